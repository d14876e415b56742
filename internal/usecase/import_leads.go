package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xavierca1/barsaude-crm/internal/entity"
	"github.com/xavierca1/barsaude-crm/internal/infra/queue"
)

// ImportLeadsUseCase parses the bulk-distribution CSV and publishes each
// valid row to the import queue. The queue worker does the actual writes,
// so a ten-thousand-row upload does not hold the HTTP request open.
//
// Line format: name, phone, email, city, establishmentType
type ImportLeadsUseCase struct {
	Leads    entity.LeadRepositoryInterface
	History  entity.StatusChangeRepositoryInterface
	Producer QueueProducerInterface
	Clock    Clock
}

func NewImportLeadsUseCase(
	leads entity.LeadRepositoryInterface,
	history entity.StatusChangeRepositoryInterface,
	producer QueueProducerInterface,
	clock Clock,
) *ImportLeadsUseCase {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ImportLeadsUseCase{Leads: leads, History: history, Producer: producer, Clock: clock}
}

// Execute queues every parseable row. Salespeople, when given, are assigned
// round-robin so the imported batch is distributed evenly.
func (uc *ImportLeadsUseCase) Execute(ctx context.Context, r io.Reader, salespeople []string) (ImportReport, error) {
	rows, skipped := ParseLeadCSV(r)

	report := ImportReport{Skipped: skipped}
	for i, row := range rows {
		payload := queue.ImportPayload{
			Name:              row.Name,
			Phone:             row.Phone,
			Email:             row.Email,
			City:              row.City,
			EstablishmentType: row.EstablishmentType,
		}
		if len(salespeople) > 0 {
			payload.Salesperson = salespeople[i%len(salespeople)]
		}

		if err := uc.Producer.PublishLeadImport(ctx, payload); err != nil {
			return report, &TechnicalError{
				Code:    CodeQueuePublish,
				Message: fmt.Sprintf("publish import row %d: %v", i+1, err),
				Cause:   err,
			}
		}
		report.Queued++
	}

	return report, nil
}

// ImportLead is the queue worker side: create the lead plus its initial
// status record.
func (uc *ImportLeadsUseCase) ImportLead(ctx context.Context, p queue.ImportPayload) error {
	lead, err := entity.NewLead(p.Name, p.Phone, p.Email, p.City, p.EstablishmentType, entity.SourceImport)
	if err != nil {
		return fmt.Errorf("invalid import row: %w", err)
	}
	lead.Salesperson = p.Salesperson

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return fmt.Errorf("create imported lead: %w", err)
	}

	rec := &entity.StatusChangeRecord{
		LeadID:      lead.ID,
		Status:      lead.Status,
		Salesperson: lead.Salesperson,
		ChangedAt:   uc.Clock.Now(),
	}
	if err := uc.History.Create(ctx, rec); err != nil {
		return fmt.Errorf("record initial status: %w", err)
	}

	return nil
}

type ImportRow struct {
	Name              string
	Phone             string
	Email             string
	City              string
	EstablishmentType string
}

// ParseLeadCSV reads the relaxed line format. Rows missing a name or with
// neither phone nor email are reported back, not silently dropped.
func ParseLeadCSV(r io.Reader) ([]ImportRow, []string) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []ImportRow
	var skipped []string

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		row := ImportRow{}
		for i, field := range record {
			field = strings.TrimSpace(field)
			switch i {
			case 0:
				row.Name = field
			case 1:
				row.Phone = field
			case 2:
				row.Email = field
			case 3:
				row.City = field
			case 4:
				row.EstablishmentType = field
			}
		}

		if row.Name == "" {
			skipped = append(skipped, fmt.Sprintf("line %d: missing name", line))
			continue
		}
		if row.Phone == "" && row.Email == "" {
			skipped = append(skipped, fmt.Sprintf("line %d: missing phone and email", line))
			continue
		}

		rows = append(rows, row)
	}

	return rows, skipped
}

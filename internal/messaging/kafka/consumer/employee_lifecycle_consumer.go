package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go-payroll/internal/events"
	"go-payroll/internal/payroll"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle seeds a zero cost-to-company row for every
// employee.created event so payroll can run before HR has entered the
// contracted figure.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreated
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee.created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := payrollService.EnsureDefaultSalary(ctx, event.EmployeeID); err != nil {
			if isDuplicateSalary(err) {
				log.Warn("salary row already exists for event, skipping",
					zap.String("employee_id", event.EmployeeID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("seed default salary failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("default salary seeded from employee.created event",
			zap.String("employee_id", event.EmployeeID),
		)
	}
}

// isDuplicateSalary catches the unique violation raised when a row
// slips in between the insert's conflict check and commit.
func isDuplicateSalary(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

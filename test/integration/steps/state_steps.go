package steps

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/arquitetura-app/backend/internal/integration/persistence/model"
	"github.com/arquitetura-app/backend/test/integration/mock"
)

// registerStateSteps registers steps that inspect the database, the queue and the mocks.
func registerStateSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the table "([^"]*)" should have (\d+) rows?$`, theTableShouldHaveRows)
	ctx.Step(`^the table "([^"]*)" should have (\d+) rows? matching:$`, theTableShouldHaveRowsMatching)
	ctx.Step(`^the transaction of installment (\d+) is removed from the database$`, theTransactionOfInstallmentIsRemoved)
	ctx.Step(`^the alert worker runs$`, theAlertWorkerRuns)
	ctx.Step(`^(\d+) emails? should have been sent$`, emailsShouldHaveBeenSent)
	ctx.Step(`^the last email subject should contain "([^"]*)"$`, theLastEmailSubjectShouldContain)
	ctx.Step(`^the last email should be addressed to the operator$`, theLastEmailShouldBeAddressedToTheOperator)
	ctx.Step(`^the published timeline events should be:$`, thePublishedTimelineEventsShouldBe)
	ctx.Step(`^no timeline events should have been published$`, noTimelineEventsShouldHaveBeenPublished)
	ctx.Step(`^the project lock is held by another request$`, theProjectLockIsHeldByAnotherRequest)
	ctx.Step(`^no project locks should be held$`, noProjectLocksShouldBeHeld)
}

func theTableShouldHaveRows(ctx context.Context, table string, count int) error {
	return theTableShouldHaveRowsMatching(ctx, table, count, nil)
}

// theTableShouldHaveRowsMatching counts rows whose columns equal the given values.
// "null" matches NULL; integers and booleans are compared as such.
func theTableShouldHaveRowsMatching(ctx context.Context, table string, count int, criteria *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	m, ok := tc.db.GetModel(table)
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}

	// Soft-deleted rows are not counted.
	query := tc.db.DbConn.WithContext(ctx).Model(m)
	if criteria != nil {
		for _, row := range criteria.Rows {
			if len(row.Cells) != 2 {
				return fmt.Errorf("expected rows of column and value")
			}
			column, raw := row.Cells[0].Value, tc.expand(row.Cells[1].Value)
			if raw == "null" {
				query = query.Where(column + " IS NULL")
				continue
			}
			query = query.Where(column+" = ?", criteriaValue(raw))
		}
	}

	var actual int64
	if err := query.Count(&actual).Error; err != nil {
		return fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	if actual != int64(count) {
		return fmt.Errorf("table %s expected %d rows, got %d", table, count, actual)
	}
	return nil
}

func criteriaValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil && (raw == "true" || raw == "false") {
		return b
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	return raw
}

// theTransactionOfInstallmentIsRemoved deletes a linked transaction behind the
// application's back, leaving the ledger out of sync with the schedule.
func theTransactionOfInstallmentIsRemoved(ctx context.Context, number int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	result := tc.db.DbConn.WithContext(ctx).Unscoped().
		Where("project_id = ? AND installment_number = ?", tc.remembered["project_id"], number).
		Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("expected to remove 1 transaction, removed %d", result.RowsAffected)
	}
	return nil
}

func theAlertWorkerRuns(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.injector.AlertWorker.ProcessNow(ctx)
	return nil
}

func emailsShouldHaveBeenSent(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if actual := tc.emailAPI.RequestCount(http.MethodPost, emailPath); actual != count {
		return fmt.Errorf("expected %d emails, got %d", count, actual)
	}
	return nil
}

func (tc *TestContext) lastEmail() (map[string]any, error) {
	sent := tc.emailAPI.RequestCount(http.MethodPost, emailPath)
	if sent == 0 {
		return nil, fmt.Errorf("no email was sent")
	}
	return tc.emailAPI.GetRequestBody(http.MethodPost, emailPath, sent-1), nil
}

func theLastEmailSubjectShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	email, err := tc.lastEmail()
	if err != nil {
		return err
	}
	subject, _ := email["subject"].(string)
	if !strings.Contains(subject, expected) {
		return fmt.Errorf("email subject %q does not contain %q", subject, expected)
	}
	return nil
}

func theLastEmailShouldBeAddressedToTheOperator(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	email, err := tc.lastEmail()
	if err != nil {
		return err
	}
	to, _ := email["to"].([]any)
	if len(to) != 1 || to[0] != operatorEmail {
		return fmt.Errorf("expected email to %s, got %v", operatorEmail, email["to"])
	}
	return nil
}

func thePublishedTimelineEventsShouldBe(ctx context.Context, expected *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	want := make([]string, 0, len(expected.Rows))
	for _, row := range expected.Rows {
		want = append(want, row.Cells[0].Value)
	}
	got := tc.publisher.Types()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		return fmt.Errorf("expected timeline events %v, got %v", want, got)
	}
	return nil
}

func noTimelineEventsShouldHaveBeenPublished(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if got := tc.publisher.Types(); len(got) != 0 {
		return fmt.Errorf("expected no timeline events, got %v", got)
	}
	return nil
}

func theProjectLockIsHeldByAnotherRequest(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	projectID, ok := tc.remembered["project_id"]
	if !ok {
		return fmt.Errorf("no project was created in this scenario")
	}
	return mock.NewRedis().Set(ctx, tc.cfg.Lock.KeyPrefix+projectID, "other-request", tc.cfg.Lock.TTL).Err()
}

func noProjectLocksShouldBeHeld(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	for _, key := range mock.RedisKeys() {
		if strings.HasPrefix(key, tc.cfg.Lock.KeyPrefix) {
			return fmt.Errorf("project lock %s is still held", key)
		}
	}
	return nil
}

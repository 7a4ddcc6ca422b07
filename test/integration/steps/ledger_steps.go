package steps

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// registerLedgerSteps registers steps that set up projects and payments through the API.
func registerLedgerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a project "([^"]*)" exists with budget "([^"]*)" in (\d+) installments starting "([^"]*)"$`, aProjectExists)
	ctx.Step(`^installment (\d+) of the project is paid$`, installmentOfTheProjectIsPaid)
	ctx.Step(`^I remember the transaction of installment (\d+)$`, iRememberTheTransactionOfInstallment)
}

func aProjectExists(ctx context.Context, name, budget string, count int, anchor string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	method := "installment_plan"
	if count == 1 {
		method = "single"
	}
	body := fmt.Sprintf(`{"name":%q,"client_name":"Cliente","budget":%q,"payment_method":%q,"installment_count":%d,"anchor_date":%q}`,
		name, budget, method, count, anchor)

	if err := tc.send(http.MethodPost, "/api/v1/projects", body); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("failed to create project: status %d, body %s", tc.response.StatusCode, string(tc.responseBody))
	}

	id, err := tc.responseField("project.id")
	if err != nil {
		return err
	}
	tc.remembered["project_id"] = fmt.Sprintf("%v", id)
	return nil
}

func installmentOfTheProjectIsPaid(ctx context.Context, number int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	endpoint := fmt.Sprintf("/api/v1/projects/{{project_id}}/installments/%d/pay", number)
	if err := tc.send(http.MethodPost, endpoint, ""); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to pay installment %d: status %d, body %s", number, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func iRememberTheTransactionOfInstallment(ctx context.Context, number int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	if err := tc.send(http.MethodGet, "/api/v1/transactions?project_id={{project_id}}", ""); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to list transactions: status %d, body %s", tc.response.StatusCode, string(tc.responseBody))
	}

	list, err := tc.responseField("transactions")
	if err != nil {
		return err
	}
	items, _ := list.([]any)
	for _, item := range items {
		tx, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if n, ok := tx["installment_number"].(float64); ok && int(n) == number {
			tc.remembered["transaction_id"] = fmt.Sprintf("%v", tx["id"])
			return nil
		}
	}
	return fmt.Errorf("no transaction linked to installment %d. Body: %s", number, string(tc.responseBody))
}

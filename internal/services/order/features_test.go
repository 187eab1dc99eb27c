package order

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/cucumber/godog"

	"pizza-pos/internal/logger"
	"pizza-pos/internal/models"
)

type checkoutTestContext struct {
	session *Session
	result  *CheckoutResult
	pending *models.PaymentTransaction
	err     error
}

func (c *checkoutTestContext) reset() {
	c.session = nil
	c.result = nil
	c.pending = nil
	c.err = nil
}

func (c *checkoutTestContext) aMenuWith(table *godog.Table) error {
	var items []models.MenuItem
	for i, row := range table.Rows {
		if i == 0 {
			continue // header
		}
		price, err := models.ParseMoney(row.Cells[1].Value)
		if err != nil {
			return err
		}
		item, err := models.NewMenuItem(row.Cells[0].Value, price)
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	c.session = NewSession(models.NewCatalog(items), logger.NewWithWriter("test", io.Discard))
	return nil
}

func (c *checkoutTestContext) indexOf(name string) int {
	for i, item := range c.session.Catalog().Items() {
		if item.Name() == name {
			return i
		}
	}
	return -1
}

func (c *checkoutTestContext) iAdd(quantity int, name string) error {
	c.session.AddItem(c.indexOf(name), quantity)
	return nil
}

func (c *checkoutTestContext) iPayWith(label string) error {
	c.result, c.err = c.session.Checkout(context.Background(), models.ParsePaymentMethod(label))
	return c.err
}

func (c *checkoutTestContext) iStartAPayment(label string) error {
	c.pending = models.NewPaymentTransaction(c.session.order, models.ParsePaymentMethod(label))
	return nil
}

func (c *checkoutTestContext) iProcessTheSamePaymentAgain() error {
	_, c.err = c.result.Transaction.Process()
	return nil
}

func (c *checkoutTestContext) theTotalIs(want string) error {
	if got := c.session.View().Total; got != want {
		return fmt.Errorf("expected total %s, got %s", want, got)
	}
	return nil
}

func (c *checkoutTestContext) theOrderLinesAre(table *godog.Table) error {
	lines := c.session.View().Lines
	if len(lines) != len(table.Rows)-1 {
		return fmt.Errorf("expected %d lines, got %v", len(table.Rows)-1, lines)
	}
	for i, row := range table.Rows[1:] {
		if lines[i] != row.Cells[0].Value {
			return fmt.Errorf("line %d: expected %q, got %q", i+1, row.Cells[0].Value, lines[i])
		}
	}
	return nil
}

func (c *checkoutTestContext) theOrderIsEmpty() error {
	if lines := c.session.View().Lines; len(lines) != 0 {
		return fmt.Errorf("expected empty order, got %v", lines)
	}
	return nil
}

func (c *checkoutTestContext) thePaymentAmountIs(want string) error {
	if got := models.FormatMoney(c.result.Transaction.Amount()); got != want {
		return fmt.Errorf("expected amount %s, got %s", want, got)
	}
	return nil
}

func (c *checkoutTestContext) thePendingPaymentAmountIs(want string) error {
	if got := models.FormatMoney(c.pending.Amount()); got != want {
		return fmt.Errorf("expected pending amount %s, got %s", want, got)
	}
	return nil
}

func (c *checkoutTestContext) thePaymentOutcomeIs(want string) error {
	if got := string(c.result.Outcome); got != want {
		return fmt.Errorf("expected outcome %s, got %s", want, got)
	}
	return nil
}

func (c *checkoutTestContext) theMessageIs(want string) error {
	if got := ResultMessage(c.result); got != want {
		return fmt.Errorf("expected message %q, got %q", want, got)
	}
	return nil
}

func (c *checkoutTestContext) thePaymentIsRejectedAsMisuse() error {
	if !IsMisuse(c.err) {
		return fmt.Errorf("expected misuse error, got %v", c.err)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a menu with:$`, tc.aMenuWith)

	// When steps
	ctx.Step(`^I add (-?\d+) "([^"]*)"$`, tc.iAdd)
	ctx.Step(`^I pay with "([^"]*)"$`, tc.iPayWith)
	ctx.Step(`^I start a "([^"]*)" payment$`, tc.iStartAPayment)
	ctx.Step(`^I process the same payment again$`, tc.iProcessTheSamePaymentAgain)

	// Then steps
	ctx.Step(`^the total is "([^"]*)"$`, tc.theTotalIs)
	ctx.Step(`^the order lines are:$`, tc.theOrderLinesAre)
	ctx.Step(`^the order is empty$`, tc.theOrderIsEmpty)
	ctx.Step(`^the payment amount is "([^"]*)"$`, tc.thePaymentAmountIs)
	ctx.Step(`^the pending payment amount is "([^"]*)"$`, tc.thePendingPaymentAmountIs)
	ctx.Step(`^the payment outcome is "([^"]*)"$`, tc.thePaymentOutcomeIs)
	ctx.Step(`^the message is "([^"]*)"$`, tc.theMessageIs)
	ctx.Step(`^the payment is rejected as misuse$`, tc.thePaymentIsRejectedAsMisuse)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

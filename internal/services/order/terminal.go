package order

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pizza-pos/internal/models"
)

const terminalHelp = `Commands:
  menu                 show the menu
  add <item> [qty]     add an item by menu number (qty defaults to 1)
  order                show the current order
  clear                empty the order
  methods              list payment methods
  pay [method]         pay the order (Cash, Credit Card, Mobile Pay)
  help                 show this help
  quit                 exit`

// Terminal is a line-oriented till driving a Session from text commands
type Terminal struct {
	session  *Session
	in       io.Reader
	out      io.Writer
	shopName string
}

// NewTerminal creates a terminal reading commands from in and writing screens to out
func NewTerminal(session *Session, shopName string, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		session:  session,
		in:       in,
		out:      out,
		shopName: shopName,
	}
}

// Run processes commands until quit, end of input or ctx cancellation
func (t *Terminal) Run(ctx context.Context) error {
	fmt.Fprintf(t.out, "Welcome to %s\n", t.shopName)
	t.renderMenu()
	t.renderOrder()

	scanner := bufio.NewScanner(t.in)
	for {
		fmt.Fprint(t.out, "> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		quit, err := t.Execute(ctx, scanner.Text())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// Execute runs one command line; it reports true when the user asked to quit
func (t *Terminal) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch strings.ToLower(fields[0]) {
	case "menu":
		t.renderMenu()
	case "add":
		t.add(fields[1:])
	case "order":
		t.renderOrder()
	case "clear":
		t.session.Clear()
		t.renderOrder()
	case "methods":
		t.renderMethods()
	case "pay":
		label := strings.TrimSpace(strings.Join(fields[1:], " "))
		if err := t.pay(ctx, label); err != nil {
			return false, err
		}
	case "help":
		fmt.Fprintln(t.out, terminalHelp)
	case "quit", "exit":
		fmt.Fprintln(t.out, "Bye.")
		return true, nil
	default:
		fmt.Fprintf(t.out, "Unknown command %q. Type help for commands.\n", fields[0])
	}

	return false, nil
}

// add treats unparsable or out-of-range input as no selection
func (t *Terminal) add(args []string) {
	index, quantity := -1, 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			index = n - 1
		}
	}
	if len(args) > 1 {
		q, err := strconv.Atoi(args[1])
		if err != nil {
			q = 0
		}
		quantity = q
	}

	t.session.AddItem(index, quantity)
	t.renderOrder()
}

func (t *Terminal) pay(ctx context.Context, label string) error {
	method := models.ParsePaymentMethod(label)

	result, err := t.session.Checkout(ctx, method)
	if err != nil {
		return fmt.Errorf("failed to check out: %w", err)
	}

	if result.Succeeded() {
		fmt.Fprintf(t.out, "[Payment] %s\n", ResultMessage(result))
	} else {
		fmt.Fprintf(t.out, "[Payment Failed] %s\n", ResultMessage(result))
	}
	t.renderOrder()
	return nil
}

func (t *Terminal) renderMenu() {
	fmt.Fprintln(t.out, "Menu:")
	for _, entry := range t.session.Menu() {
		fmt.Fprintf(t.out, "  %d. %s\n", entry.Index+1, entry.Display)
	}
}

func (t *Terminal) renderOrder() {
	view := t.session.View()
	if len(view.Lines) == 0 {
		fmt.Fprintln(t.out, "Order: (empty)")
	} else {
		fmt.Fprintln(t.out, "Order:")
		for i, line := range view.Lines {
			fmt.Fprintf(t.out, "  %d. %s\n", i+1, line)
		}
	}
	fmt.Fprintf(t.out, "Total: %s\n", view.Total)
}

func (t *Terminal) renderMethods() {
	fmt.Fprintln(t.out, "Payment methods:")
	for _, m := range models.PaymentMethods() {
		fmt.Fprintf(t.out, "  %s\n", m.Label())
	}
}

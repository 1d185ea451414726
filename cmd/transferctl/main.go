/**
 * @description
 * transferctl is the command line front end for the dashboard service. It
 * signs in, shows the session's balances, deposit addresses and history, and
 * drives a transfer submission through the staged progress flow while
 * printing each stage as it advances.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/selewanto/dashboard/internal/domain"
	"github.com/selewanto/dashboard/internal/history"
	"github.com/selewanto/dashboard/internal/notify"
	"github.com/selewanto/dashboard/internal/session"
	"github.com/selewanto/dashboard/internal/transfer"
	"github.com/selewanto/dashboard/pkg/dashclient"
	"github.com/selewanto/dashboard/pkg/tokenstore"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	baseURL := os.Getenv("SELEWANTO_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	tokens, err := tokenstore.DefaultStore()
	if err != nil {
		fatal(err)
	}

	var cmdErr error
	switch os.Args[1] {
	case "login":
		cmdErr = runLogin(baseURL, tokens, os.Args[2:])
	case "logout":
		cmdErr = tokens.Clear(tokenstore.DashboardToken)
	case "whoami":
		cmdErr = runWhoami(baseURL, tokens)
	case "currencies":
		cmdErr = runCurrencies()
	case "deposit":
		cmdErr = runDeposit(baseURL, tokens)
	case "history":
		cmdErr = runHistory(baseURL, tokens)
	case "transfer":
		cmdErr = runTransfer(baseURL, tokens, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if cmdErr != nil {
		fatal(cmdErr)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: transferctl <login|logout|whoami|currencies|deposit|history|transfer> [flags]")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "transferctl:", err)
	os.Exit(1)
}

func sessionStore(baseURL string, tokens *tokenstore.Store) (*session.Store, error) {
	token, err := tokens.Get(tokenstore.DashboardToken)
	if err != nil {
		return nil, errors.New("not signed in; run transferctl login")
	}
	return session.NewStore(dashclient.NewClient(baseURL, token)), nil
}

func runLogin(baseURL string, tokens *tokenstore.Store, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)
	if *email == "" || *password == "" {
		return errors.New("login requires -email and -password")
	}

	resp, err := dashclient.Login(context.Background(), baseURL, *email, *password)
	if err != nil {
		return err
	}
	if err := tokens.Set(tokenstore.DashboardToken, resp.Token); err != nil {
		return err
	}
	fmt.Printf("signed in as %s %s\n", resp.User.Name, resp.User.LastName)
	return nil
}

func runWhoami(baseURL string, tokens *tokenstore.Store) error {
	store, err := sessionStore(baseURL, tokens)
	if err != nil {
		return err
	}
	if err := store.Refresh(context.Background()); err != nil {
		return err
	}
	user := store.User()

	fmt.Printf("%s %s <%s> account %d\n", user.Name, user.LastName, user.Email, user.AccountID)
	if user.Blocked {
		fmt.Println("account is blocked")
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, c := range domain.Currencies() {
		fmt.Fprintf(w, "%s\t%.8g\n", c.Title, store.Balance(c.Label))
	}
	return w.Flush()
}

func runCurrencies() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CURRENCY\tNETWORK\tRATE\tPROCESSING\tFEE")
	for _, c := range domain.Currencies() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Title, c.Network, c.Rate.StringFixed(2), c.ProcessingTime, c.Fee)
	}
	return w.Flush()
}

func runDeposit(baseURL string, tokens *tokenstore.Store) error {
	token, err := tokens.Get(tokenstore.DashboardToken)
	if err != nil {
		return errors.New("not signed in; run transferctl login")
	}
	client := dashclient.NewClient(baseURL, token)

	info, err := client.GetDepositInfo(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ASSET\tNETWORK\tADDRESS")
	for _, wallet := range info.Wallets {
		fmt.Fprintf(w, "%s\t%s\t%s\n", wallet.Label, wallet.Network, wallet.Address)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	for _, limit := range info.Limits {
		fmt.Printf("%s: %s\n", limit.Label, limit.Value)
	}
	return nil
}

func runHistory(baseURL string, tokens *tokenstore.Store) error {
	store, err := sessionStore(baseURL, tokens)
	if err != nil {
		return err
	}
	if err := store.Refresh(context.Background()); err != nil {
		return err
	}

	view := history.NewView(store.Transactions())
	rows := view.Visible()
	if len(rows) == 0 {
		fmt.Println("no transactions")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSUM\tSYSTEM\tID\tSTATUS")
	for _, tx := range rows {
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\t%s\n",
			history.FormatDate(tx.Date), tx.Sum,
			history.NormalizePaymentSystem(tx.PaymentSystem),
			tx.TransactionID, tx.Status)
	}
	return w.Flush()
}

func runTransfer(baseURL string, tokens *tokenstore.Store, args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	currency := fs.String("currency", "", "currency code, e.g. BTC")
	fullName := fs.String("name", "", "recipient full name")
	wallet := fs.String("wallet", "", "destination wallet address")
	amount := fs.String("amount", "", "amount to transfer")
	memo := fs.String("memo", "", "optional memo")
	priority := fs.String("priority", string(domain.PriorityStandard), "standard, express or instant")
	fs.Parse(args)

	store, err := sessionStore(baseURL, tokens)
	if err != nil {
		return err
	}
	if err := store.Refresh(context.Background()); err != nil {
		return err
	}
	user := store.User()

	token, _ := tokens.Get(tokenstore.DashboardToken)
	client := dashclient.NewClient(baseURL, token)

	form := transfer.NewForm()
	form.SelectCurrency(*currency)
	form.Request.FullName = *fullName
	form.Request.Wallet = *wallet
	form.Request.Amount = *amount
	form.Request.Memo = *memo
	form.Request.Priority = domain.Priority(*priority)

	presenter := notify.NewPresenter(0)
	defer presenter.Close()

	stages := transfer.Stages()
	updates := make(chan transfer.State, 16)
	runner := transfer.NewRunner(form, client.SendMail, consoleNotifier{presenter}, transfer.DefaultTimings(), func(s transfer.State) {
		updates <- s
	})
	defer runner.Close()

	fieldErrs, err := runner.Submit(context.Background(), user.Email, user.AccountID)
	if err != nil {
		return err
	}
	if len(fieldErrs) > 0 {
		for field, msg := range fieldErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
		}
		return errors.New("transfer form is invalid")
	}

	for s := range updates {
		if s.Step == 0 {
			// Completed run reset to idle.
			return nil
		}
		if !s.Visible {
			return errors.New("transfer submission failed")
		}
		stage := stages[s.Step-1]
		fmt.Printf("[%d/5] %s - %s\n", stage.ID, stage.Title, stage.Description)
	}
	return nil
}

// consoleNotifier mirrors presenter messages onto the terminal.
type consoleNotifier struct {
	presenter *notify.Presenter
}

func (n consoleNotifier) Success(msg string) {
	n.presenter.Success(msg)
	fmt.Println(msg)
}

func (n consoleNotifier) Error(msg string) {
	n.presenter.Error(msg)
	fmt.Fprintln(os.Stderr, msg)
}

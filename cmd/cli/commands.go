package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/splitnest/internal/adapter/http/dto"
	"github.com/iho/splitnest/internal/domain"
	"github.com/iho/splitnest/internal/usecase"
)

const descriptionWidth = 40

func (c *cli) partnersCmd() *cobra.Command {
	partnersCmd := &cobra.Command{
		Use:   "partners",
		Short: "Partner operations",
	}

	partnersCmd.AddCommand(&cobra.Command{
		Use:   "set PARTNER1 PARTNER2",
		Short: "Name the two partners (only once per ledger)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := c.app.Ledger.SetPartners(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return c.printLedger(cmd.OutOrStdout(), ledger)
		},
	})

	return partnersCmd
}

func (c *cli) ratioCmd() *cobra.Command {
	ratioCmd := &cobra.Command{
		Use:   "ratio",
		Short: "Default split ratio operations",
	}

	ratioCmd.AddCommand(&cobra.Command{
		Use:   "set PERCENT",
		Short: "Set partner1's share of every ratio-split expense, 0 to 100",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q is not a whole number", domain.ErrInvalidSplitRatio, args[0])
			}
			ledger, err := c.app.Ledger.SetSplitRatioPercent(cmd.Context(), pct)
			if err != nil {
				return err
			}
			return c.printLedger(cmd.OutOrStdout(), ledger)
		},
	})

	return ratioCmd
}

func (c *cli) printLedger(w io.Writer, ledger *domain.Ledger) error {
	if c.jsonOutput {
		return printJSON(w, dto.LedgerFromDomain(ledger))
	}
	pct := ledger.SplitRatio.Partner1Percent()
	fmt.Fprintf(w, "Partners: %s and %s\n", ledger.Partner1, ledger.Partner2)
	fmt.Fprintf(w, "Split ratio: %s %d%% / %s %d%%\n", ledger.Partner1, pct, ledger.Partner2, 100-pct)
	return nil
}

type expenseFlags struct {
	amount       string
	description  string
	paidBy       string
	category     string
	recurring    string
	splitPercent string
	splitAmount  string
}

func (f expenseFlags) input() (usecase.AddExpenseInput, error) {
	amount, err := domain.ParseAmount(f.amount)
	if err != nil {
		return usecase.AddExpenseInput{}, err
	}

	category, err := domain.ParseCategory(f.category)
	if err != nil {
		return usecase.AddExpenseInput{}, err
	}

	recurrence, err := domain.ParseRecurrence(f.recurring)
	if err != nil {
		return usecase.AddExpenseInput{}, err
	}

	split := domain.RatioRule()
	switch {
	case f.splitPercent != "":
		pct, err := decimal.NewFromString(strings.TrimSpace(f.splitPercent))
		if err != nil {
			return usecase.AddExpenseInput{}, fmt.Errorf("%w: %q", domain.ErrInvalidPercentage, f.splitPercent)
		}
		split = domain.PercentageRule(pct)
	case f.splitAmount != "":
		fixed, err := domain.ParseAmount(f.splitAmount)
		if err != nil {
			return usecase.AddExpenseInput{}, err
		}
		split = domain.AmountRule(fixed)
	}

	return usecase.AddExpenseInput{
		Amount:      amount,
		Description: f.description,
		PaidBy:      f.paidBy,
		Category:    category,
		Recurring:   recurrence != domain.RecurrenceNone,
		Recurrence:  recurrence,
		Split:       split,
	}, nil
}

func (c *cli) expenseCmd() *cobra.Command {
	expenseCmd := &cobra.Command{
		Use:   "expense",
		Short: "Expense operations",
	}

	var flags expenseFlags
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.input()
			if err != nil {
				return err
			}
			expense, err := c.app.Ledger.AddExpense(cmd.Context(), input)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if c.jsonOutput {
				return printJSON(w, dto.ExpenseFromDomain(expense))
			}
			fmt.Fprintf(w, "Added %s %s (%s paid)\n", expense.Description, domain.FormatMoney(expense.Amount), expense.PaidBy)
			fmt.Fprintf(w, "Split: %s %s / %s %s\n",
				expense.Split.Partner1.Partner, domain.FormatMoney(expense.Split.Partner1.Amount),
				expense.Split.Partner2.Partner, domain.FormatMoney(expense.Split.Partner2.Amount))
			return nil
		},
	}
	addCmd.Flags().StringVar(&flags.amount, "amount", "", "Amount in dollars, e.g. 12.50")
	addCmd.Flags().StringVar(&flags.description, "description", "", "What the expense was for")
	addCmd.Flags().StringVar(&flags.paidBy, "paid-by", "", "Partner who paid")
	addCmd.Flags().StringVar(&flags.category, "category", "", "Food, Entertainment, Bills or Other")
	addCmd.Flags().StringVar(&flags.recurring, "recurring", "", "Recurrence frequency: Monthly, Weekly or Yearly")
	addCmd.Flags().StringVar(&flags.splitPercent, "split-percent", "", "Partner1's percentage for this expense")
	addCmd.Flags().StringVar(&flags.splitAmount, "split-amount", "", "Partner1's fixed amount for this expense")
	for _, name := range []string{"amount", "description", "paid-by", "category"} {
		_ = addCmd.MarkFlagRequired(name)
	}
	addCmd.MarkFlagsMutuallyExclusive("split-percent", "split-amount")

	var (
		newestFirst bool
		category    string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := usecase.ListExpensesInput{NewestFirst: newestFirst}
			if category != "" {
				parsed, err := domain.ParseCategory(category)
				if err != nil {
					return err
				}
				input.Category = parsed
			}

			expenses, err := c.app.Ledger.ListExpenses(cmd.Context(), input)
			if err != nil {
				return err
			}
			return c.printExpenses(cmd.OutOrStdout(), expenses)
		},
	}
	listCmd.Flags().BoolVar(&newestFirst, "newest-first", false, "Show the most recent expense first")
	listCmd.Flags().StringVar(&category, "category", "", "Only show this category")

	expenseCmd.AddCommand(addCmd, listCmd)
	return expenseCmd
}

func (c *cli) printExpenses(w io.Writer, expenses []domain.Expense) error {
	if c.jsonOutput {
		return printJSON(w, dto.ListExpensesResponse{
			Expenses: dto.ExpensesFromDomain(expenses),
			Total:    len(expenses),
		})
	}
	if len(expenses) == 0 {
		fmt.Fprintln(w, "No expenses recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDESCRIPTION\tAMOUNT\tPAID BY\tCATEGORY\tRECURRENCE")
	for _, e := range expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.FormattedDate(), truncate(e.Description, descriptionWidth), domain.FormatMoney(e.Amount),
			e.PaidBy, e.Category, e.Recurrence)
	}
	return tw.Flush()
}

func (c *cli) balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show what each partner paid and owes, and who owes whom",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := c.app.Reports.Balance(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if c.jsonOutput {
				return printJSON(w, dto.BalanceFromDomain(balance))
			}
			fmt.Fprintln(w, balance.Partner1.Line())
			fmt.Fprintln(w, balance.Partner2.Line())
			fmt.Fprintln(w, balance.Summary())
			return nil
		},
	}
}

func (c *cli) recurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recurring",
		Short: "List recurring expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			expenses, err := c.app.Reports.Recurring(cmd.Context())
			if err != nil {
				return err
			}
			return c.printExpenses(cmd.OutOrStdout(), expenses)
		},
	}
}

func (c *cli) breakdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "breakdown",
		Short: "Show spending per category and payer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := c.app.Ledger.GetLedger(cmd.Context())
			if err != nil {
				return err
			}
			totals, err := c.app.Reports.CategoryBreakdown(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if c.jsonOutput {
				return printJSON(w, map[string]any{"categories": dto.CategoryTotalsFromDomain(totals)})
			}
			if len(totals) == 0 {
				fmt.Fprintln(w, "No expenses recorded.")
				return nil
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "CATEGORY\tTOTAL\t%s\t%s\n", ledger.Partner1, ledger.Partner2)
			for _, t := range totals {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Category, domain.FormatMoney(t.Total),
					domain.FormatMoney(t.ByPayer[ledger.Partner1]), domain.FormatMoney(t.ByPayer[ledger.Partner2]))
			}
			return tw.Flush()
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var output string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export expenses as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" || output == "-" {
				return c.app.Reports.ExportCSV(cmd.Context(), cmd.OutOrStdout())
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := c.app.Reports.ExportCSV(cmd.Context(), f); err != nil {
				f.Close()
				os.Remove(output)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", output, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported expenses to %s\n", output)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return exportCmd
}

func (c *cli) resetCmd() *cobra.Command {
	var confirmed bool

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all expenses, partner names and the split ratio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return errors.New("refusing to reset the ledger without --yes")
			}
			if err := c.app.Ledger.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Ledger reset.")
			return nil
		},
	}
	resetCmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the reset")

	return resetCmd
}

func (c *cli) ledgerCmd() *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	ledgerCmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.app.Ledger.CheckConsistency(cmd.Context())
			if err != nil && !errors.Is(err, domain.ErrInconsistentLedger) {
				return err
			}

			w := cmd.OutOrStdout()
			if c.jsonOutput {
				resp := dto.ConsistencyResponse{Status: "consistent", Consistent: true}
				if err != nil {
					resp = dto.ConsistencyResponse{Status: "inconsistent", Message: err.Error()}
				}
				if perr := printJSON(w, resp); perr != nil {
					return perr
				}
				return err
			}

			if err != nil {
				fmt.Fprintf(w, "Consistency check FAILED\n")
				return err
			}
			fmt.Fprintf(w, "Consistency check PASSED\n")
			return nil
		},
	})

	return ledgerCmd
}

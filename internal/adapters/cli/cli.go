// Package cli is the one-shot reporting command surface. It renders reports
// as fixed-width tables on stdout and contains no business logic.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"finbook/internal/app"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// NewRootCmd builds the reports command tree over the application service.
func NewRootCmd(svc app.ApplicationService) *cobra.Command {
	root := &cobra.Command{
		Use:           "reports",
		Short:         "Financial reports for the active company",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTrialBalanceCmd(svc),
		newBalanceSheetCmd(svc),
		newProfitAndLossCmd(svc),
		newCashFlowCmd(svc),
		newVATCmd(svc),
		newStatementCmd(svc),
		newReconciliationCmd(svc),
		newExportCmd(svc),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute(svc app.ApplicationService) {
	if err := NewRootCmd(svc).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func companyID(ctx context.Context, svc app.ApplicationService) (int, error) {
	company, err := svc.LoadDefaultCompany(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load company: %w", err)
	}
	return company.ID, nil
}

func parseDateFlag(cmd *cobra.Command, name string, fallback time.Time) (time.Time, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q (use YYYY-MM-DD)", name, raw)
	}
	return t, nil
}

func newTrialBalanceCmd(svc app.ApplicationService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Trial balance as of a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := companyID(ctx, svc)
			if err != nil {
				return err
			}
			asOf, err := parseDateFlag(cmd, "as-of", time.Now())
			if err != nil {
				return err
			}
			result, err := svc.GetTrialBalance(ctx, id, asOf)
			if err != nil {
				return err
			}
			printTrialBalance(result)
			return nil
		},
	}
	cmd.Flags().String("as-of", "", "report date (YYYY-MM-DD), defaults to today")
	return cmd
}

func printTrialBalance(result *app.TrialBalanceResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  TRIAL BALANCE as of %s\n", result.Report.AsOf.Format(dateLayout))
	fmt.Printf("  Company  : %s\n", result.CompanyName)
	fmt.Printf("  Currency : %s\n", result.Currency)
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  %-28s %-20s %12s %12s\n", "LEDGER", "GROUP", "DEBIT", "CREDIT")
	fmt.Println(strings.Repeat("-", 78))
	for _, row := range result.Report.Rows {
		fmt.Printf("  %-28s %-20s %12s %12s\n",
			row.LedgerName, row.GroupName, row.Debit.StringFixed(2), row.Credit.StringFixed(2))
	}
	fmt.Println(strings.Repeat("-", 78))
	fmt.Printf("  %-49s %12s %12s\n", "TOTAL",
		result.Report.TotalDebit.StringFixed(2), result.Report.TotalCredit.StringFixed(2))
	if !result.Report.Balanced {
		fmt.Println("  WARNING: trial balance does not balance")
	}
	fmt.Println(strings.Repeat("=", 78))
}

func newBalanceSheetCmd(svc app.ApplicationService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Balance sheet as of a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := companyID(ctx, svc)
			if err != nil {
				return err
			}
			asOf, err := parseDateFlag(cmd, "as-of", time.Now())
			if err != nil {
				return err
			}
			result, err := svc.GetBalanceSheet(ctx, id, asOf)
			if err != nil {
				return err
			}
			printBalanceSheet(result)
			return nil
		},
	}
	cmd.Flags().String("as-of", "", "report date (YYYY-MM-DD), defaults to today")
	return cmd
}

func printBalanceSheet(result *app.BalanceSheetResult) {
	report := result.Report
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  BALANCE SHEET as of %s\n", report.AsOf.Format(dateLayout))
	fmt.Printf("  Company  : %s\n", result.CompanyName)
	fmt.Printf("  Currency : %s\n", result.Currency)
	fmt.Println(strings.Repeat("=", 62))

	fmt.Println("  ASSETS")
	for _, row := range report.Assets {
		fmt.Printf("    %-40s %15s\n", row.LedgerName, row.Amount.StringFixed(2))
	}
	fmt.Println("  LIABILITIES")
	for _, row := range report.Liabilities {
		fmt.Printf("    %-40s %15s\n", row.LedgerName, row.Amount.StringFixed(2))
	}
	fmt.Println("  CAPITAL")
	for _, row := range report.Capital {
		fmt.Printf("    %-40s %15s\n", row.LedgerName, row.Amount.StringFixed(2))
	}

	fmt.Println(strings.Repeat("-", 62))
	fmt.Printf("  %-42s %15s\n", "TOTAL ASSETS", report.TotalAssets.StringFixed(2))
	fmt.Printf("  %-42s %15s\n", "TOTAL LIABILITIES + CAPITAL", report.TotalLiabilitiesCapital.StringFixed(2))
	if !report.Balanced {
		fmt.Println("  WARNING: balance sheet equation does not hold")
	}
	fmt.Println(strings.Repeat("=", 62))
}

func newProfitAndLossCmd(svc app.ApplicationService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pnl",
		Short: "Profit & Loss for a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := companyID(ctx, svc)
			if err != nil {
				return err
			}
			from, to, err := periodFlags(cmd)
			if err != nil {
				return err
			}
			result, err := svc.GetProfitAndLoss(ctx, id, from, to)
			if err != nil {
				return err
			}
			printProfitAndLoss(result)
			return nil
		},
	}
	addPeriodFlags(cmd)
	return cmd
}

func printProfitAndLoss(result *app.ProfitAndLossResult) {
	report := result.Report
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  PROFIT & LOSS  %s to %s\n", report.From.Format(dateLayout), report.To.Format(dateLayout))
	fmt.Printf("  Company  : %s\n", result.CompanyName)
	fmt.Printf("  Currency : %s\n", result.Currency)
	fmt.Println(strings.Repeat("=", 62))
	fmt.Println("  INCOME")
	for _, row := range report.Income {
		fmt.Printf("    %-40s %15s\n", row.LedgerName, row.Amount.StringFixed(2))
	}
	fmt.Println("  EXPENSES")
	for _, row := range report.Expenses {
		fmt.Printf("    %-40s %15s\n", row.LedgerName, row.Amount.StringFixed(2))
	}
	fmt.Println(strings.Repeat("-", 62))
	fmt.Printf("  %-42s %15s\n", "TOTAL INCOME", report.TotalIncome.StringFixed(2))
	fmt.Printf("  %-42s %15s\n", "TOTAL EXPENSES", report.TotalExpenses.StringFixed(2))
	fmt.Printf("  %-42s %15s\n", "NET PROFIT", report.NetProfit.StringFixed(2))
	fmt.Println(strings.Repeat("=", 62))
}

func newCashFlowCmd(svc app.ApplicationService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Voucher-classified cash flow for a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := companyID(ctx, svc)
			if err != nil {
				return err
			}
			from, to, err := periodFlags(cmd)
			if err != nil {
				return err
			}
			result, err := svc.GetCashFlow(ctx, id, from, to)
			if err != nil {
				return err
			}
			printCashFlow(result)
			return nil
		},
	}
	addPeriodFlags(cmd)
	return cmd
}

func printCashFlow(result *app.CashFlowResult) {
	report := result.Report
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  CASH FLOW  %s to %s\n", report.From.Format(dateLayout), report.To.Format(dateLayout))
	fmt.Printf("  Company  : %s\n", result.CompanyName)
	fmt.Println(strings.Repeat("=", 62))
	fmt.Println("  INFLOWS")
	for _, row := range report.Inflows {
		fmt.Printf("    %-30s %6d %18s\n", row.Type, row.Count, row.Amount.StringFixed(2))
	}
	fmt.Println("  OUTFLOWS")
	for _, row := range report.Outflows {
		fmt.Printf("    %-30s %6d %18s\n", row.Type, row.Count, row.Amount.StringFixed(2))
	}
	fmt.Println(strings.Repeat("-", 62))
	fmt.Printf("  %-38s %18s\n", "TOTAL INFLOW", report.TotalInflow.StringFixed(2))
	fmt.Printf("  %-38s %18s\n", "TOTAL OUTFLOW", report.TotalOutflow.StringFixed(2))
	fmt.Printf("  %-38s %18s\n", "NET CASH FLOW", report.NetCashFlow.StringFixed(2))
	fmt.Println(strings.Repeat("=", 62))
}

func newVATCmd(svc app.ApplicationService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vat",
		Short: "VAT computation for a tax period",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := companyID(ctx, svc)
			if err != nil {
				return err
			}
			from, to, err := periodFlags(cmd)
			if err != nil {
				return err
			}
			result, err := svc.GetVATComputation(ctx, id, from, to)
			if err != nil {
				return err
			}
			printVAT(result)
			return nil
		},
	}
	addPeriodFlags(cmd)
	return cmd
}

func printVAT(result *app.VATResult) {
	report := result.Report
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  VAT COMPUTATION  %s to %s\n", report.From.Format(dateLayout), report.To.Format(dateLayout))
	fmt.Printf("  Company  : %s\n", result.CompanyName)
	fmt.Println(strings.Repeat("=", 62))
	line := func(label, value string) {
		fmt.Printf("  %-42s %15s\n", label, value)
	}
	line("Sales (gross)", report.SalesGross.StringFixed(2))
	line("Sales VAT", report.SalesVAT.StringFixed(2))
	line("Credit Notes (gross)", report.CreditNoteGross.StringFixed(2))
	line("Credit Note VAT", report.CreditNoteVAT.StringFixed(2))
	line("Purchases (gross)", report.PurchaseGross.StringFixed(2))
	line("Purchase VAT", report.PurchaseVAT.StringFixed(2))
	line("Debit Notes (gross)", report.DebitNoteGross.StringFixed(2))
	line("Debit Note VAT", report.DebitNoteVAT.StringFixed(2))
	fmt.Println(strings.Repeat("-", 62))
	line("OUTPUT VAT", report.OutputVAT.StringFixed(2))
	line("INPUT VAT", report.InputVAT.StringFixed(2))
	line("NET VAT", report.NetVAT.StringFixed(2))
	fmt.Println(strings.Repeat("=", 62))
}

func newStatementCmd(svc app.ApplicationService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Running ledger statement for a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := companyID(ctx, svc)
			if err != nil {
				return err
			}
			ledgerID, _ := cmd.Flags().GetInt("ledger")
			if ledgerID <= 0 {
				return fmt.Errorf("missing required flag --ledger")
			}
			from, to, err := periodFlags(cmd)
			if err != nil {
				return err
			}
			result, err := svc.GetStatement(ctx, id, ledgerID, from, to)
			if err != nil {
				return err
			}
			printStatement(result)
			return nil
		},
	}
	cmd.Flags().Int("ledger", 0, "ledger id")
	addPeriodFlags(cmd)
	return cmd
}

func printStatement(result *app.StatementResult) {
	stmt := result.Statement
	fmt.Println()
	fmt.Println(strings.Repeat("=", 92))
	fmt.Printf("  LEDGER STATEMENT  %s  (%s to %s)\n",
		stmt.LedgerName, stmt.From.Format(dateLayout), stmt.To.Format(dateLayout))
	fmt.Printf("  Company  : %s\n", result.CompanyName)
	fmt.Printf("  Opening  : %s\n", stmt.OpeningBalance.StringFixed(2))
	fmt.Println(strings.Repeat("=", 92))
	fmt.Printf("  %-12s %-18s %-24s %10s %10s %12s\n",
		"DATE", "VOUCHER", "NARRATION", "DEBIT", "CREDIT", "BALANCE")
	fmt.Println(strings.Repeat("-", 92))
	for _, line := range stmt.Lines {
		fmt.Printf("  %-12s %-18s %-24s %10s %10s %12s\n",
			line.Date.Format(dateLayout), line.VoucherNumber, truncate(line.Narration, 24),
			line.Debit.StringFixed(2), line.Credit.StringFixed(2), line.RunningBalance.StringFixed(2))
	}
	fmt.Println(strings.Repeat("-", 92))
	fmt.Printf("  %-56s %10s %10s %12s\n", "CLOSING",
		stmt.TotalDebit.StringFixed(2), stmt.TotalCredit.StringFixed(2), stmt.ClosingBalance.StringFixed(2))
	fmt.Println(strings.Repeat("=", 92))
}

func newReconciliationCmd(svc app.ApplicationService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconciliation",
		Short: "Bank reconciliation for a ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := companyID(ctx, svc)
			if err != nil {
				return err
			}
			ledgerID, _ := cmd.Flags().GetInt("ledger")
			if ledgerID <= 0 {
				return fmt.Errorf("missing required flag --ledger")
			}
			asOf, err := parseDateFlag(cmd, "as-of", time.Now())
			if err != nil {
				return err
			}
			result, err := svc.GetBankReconciliation(ctx, id, ledgerID, asOf)
			if err != nil {
				return err
			}
			printReconciliation(result)
			return nil
		},
	}
	cmd.Flags().Int("ledger", 0, "bank ledger id")
	cmd.Flags().String("as-of", "", "report date (YYYY-MM-DD), defaults to today")
	return cmd
}

func printReconciliation(result *app.ReconciliationResult) {
	report := result.Report
	fmt.Println()
	fmt.Println(strings.Repeat("=", 92))
	fmt.Printf("  BANK RECONCILIATION  %s as of %s\n", report.LedgerName, report.AsOf.Format(dateLayout))
	fmt.Printf("  Company  : %s\n", result.CompanyName)
	fmt.Println(strings.Repeat("=", 92))
	fmt.Printf("  %-12s %-18s %-24s %10s %10s %-10s\n",
		"DATE", "VOUCHER", "NARRATION", "DEBIT", "CREDIT", "STATUS")
	fmt.Println(strings.Repeat("-", 92))
	for _, line := range report.Lines {
		fmt.Printf("  %-12s %-18s %-24s %10s %10s %-10s\n",
			line.Date.Format(dateLayout), line.VoucherNumber, truncate(line.Narration, 24),
			line.Debit.StringFixed(2), line.Credit.StringFixed(2), line.Status)
	}
	fmt.Println(strings.Repeat("-", 92))
	fmt.Printf("  Book balance       : %s\n", report.BookBalance.StringFixed(2))
	fmt.Printf("  Reconciled balance : %s\n", report.ReconciledBalance.StringFixed(2))
	fmt.Printf("  Reconciled %d, pending %d\n", report.ReconciledCount, report.PendingCount)
	fmt.Println(strings.Repeat("=", 92))
}

func newExportCmd(svc app.ApplicationService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a report to a PDF or XLSX file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := companyID(ctx, svc)
			if err != nil {
				return err
			}
			report, _ := cmd.Flags().GetString("report")
			format, _ := cmd.Flags().GetString("format")
			ledgerID, _ := cmd.Flags().GetInt("ledger")
			out, _ := cmd.Flags().GetString("out")

			from, err := parseDateFlag(cmd, "from", time.Time{})
			if err != nil {
				return err
			}
			to, err := parseDateFlag(cmd, "to", time.Now())
			if err != nil {
				return err
			}

			result, err := svc.ExportReport(ctx, app.ExportRequest{
				CompanyID: id,
				Report:    report,
				Format:    format,
				LedgerID:  ledgerID,
				From:      from,
				To:        to,
			})
			if err != nil {
				return err
			}

			if out == "" {
				out = result.Filename
			}
			if err := os.WriteFile(out, result.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Printf("Wrote %s (%d bytes)\n", out, len(result.Data))
			return nil
		},
	}
	cmd.Flags().String("report", "trial-balance", "report to export: trial-balance, balance-sheet, vat, statement")
	cmd.Flags().String("format", "pdf", "output format: pdf or xlsx")
	cmd.Flags().Int("ledger", 0, "ledger id (statement only)")
	cmd.Flags().String("out", "", "output file path, defaults to a generated name")
	cmd.Flags().String("from", "", "period start (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "period end / as-of date (YYYY-MM-DD), defaults to today")
	return cmd
}

func addPeriodFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "period start (YYYY-MM-DD), required")
	cmd.Flags().String("to", "", "period end (YYYY-MM-DD), defaults to today")
}

func periodFlags(cmd *cobra.Command) (time.Time, time.Time, error) {
	from, err := parseDateFlag(cmd, "from", time.Time{})
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("missing required flag --from")
	}
	to, err := parseDateFlag(cmd, "to", time.Now())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

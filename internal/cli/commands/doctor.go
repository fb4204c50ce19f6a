package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapcrud/internal/cli/output"
	"github.com/leapstack-labs/leapcrud/internal/registry"
	"github.com/leapstack-labs/leapcrud/internal/service"
	"github.com/leapstack-labs/leapcrud/pkg/adapter"
	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the target connection and every configured table",
		Long: `Connect to the target and describe each configured table.

A table passes when its primary key is found in the catalog. It warns when
the catalog reports no columns (the table is missing, so reads return
nothing and writes are skipped) and fails on any other error.

Output adapts to environment:
- Terminal: styled report
- Piped: markdown
- --output json: structured report`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}
}

// DoctorOutput is the structured result of the doctor command.
type DoctorOutput struct {
	Target string        `json:"target"`
	Checks []TableCheck  `json:"checks"`
	Counts StatusSummary `json:"summary"`
}

// TableCheck is the outcome for one configured table.
type TableCheck struct {
	Table      string `json:"table"`
	PrimaryKey string `json:"primary_key"`
	Status     string `json:"status"` // "pass", "warn", "error"
	Columns    int    `json:"columns"`
	Detail     string `json:"detail,omitempty"`
}

// StatusSummary counts checks by status.
type StatusSummary struct {
	Pass  int `json:"pass"`
	Warn  int `json:"warn"`
	Error int `json:"error"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	out := &DoctorOutput{Target: adapter.DescribeTarget(cmdCtx.Cfg.Target.AdapterConfig())}
	for _, t := range cmdCtx.Service.Tables().All() {
		check, checkErr := checkTable(cmd, cmdCtx.Service, t)
		switch check.Status {
		case "pass":
			out.Counts.Pass++
		case "warn":
			out.Counts.Warn++
		default:
			out.Counts.Error++
		}
		out.Checks = append(out.Checks, check)

		// Every remaining table would fail the same way.
		var connErr *core.ConnectionError
		if errors.As(checkErr, &connErr) {
			break
		}
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		err = r.JSON(out)
	case output.ModeText:
		renderDoctorText(r, out)
	default:
		renderDoctorMarkdown(r, out)
	}
	if err != nil {
		return err
	}
	if out.Counts.Error > 0 {
		return fmt.Errorf("%d of %d tables failed", out.Counts.Error, len(out.Checks))
	}
	return nil
}

func checkTable(cmd *cobra.Command, svc *service.Service, t core.TableConfig) (TableCheck, error) {
	check := TableCheck{Table: t.Name, PrimaryKey: t.PrimaryKey}
	desc, err := svc.Describe(cmd.Context(), t.Name)
	switch {
	case err != nil:
		check.Status = "error"
		check.Detail = err.Error()
	case desc.IsEmpty():
		check.Status = "warn"
		check.Detail = "no columns in catalog"
	default:
		check.Status = "pass"
		check.Columns = len(desc.Columns)
		pk, _ := desc.PrimaryKeyColumn()
		check.Detail = fmt.Sprintf("%s %s", pk.Name, pk.Type)
		if pk.AutoGenerated {
			check.Detail += ", generated"
		}
	}
	return check, err
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()
	titleCaser := cases.Title(language.English)

	r.Println(styles.Header1.Render("Table Health Report"))
	r.Println(styles.Muted.Render("Target: " + out.Target))
	r.Println(styles.Muted.Render(strings.Repeat("-", 40)))

	for _, check := range out.Checks {
		icon := styles.StatusSuccess.String()
		switch check.Status {
		case "warn":
			icon = styles.Warning.Render("!")
		case "error":
			icon = styles.StatusFailed.String()
		}
		line := fmt.Sprintf("%s %s", icon, styles.Bold.Render(registry.Title(core.TableConfig{Name: check.Table})))
		if check.Columns > 0 {
			line += fmt.Sprintf(" (%d columns)", check.Columns)
		}
		r.Println(line)
		if check.Detail != "" {
			r.Println(styles.Muted.Render("    " + check.Detail))
		}
	}

	r.Println("")
	r.Printf("%s: %d  %s: %d  %s: %d\n",
		titleCaser.String("pass"), out.Counts.Pass,
		titleCaser.String("warn"), out.Counts.Warn,
		titleCaser.String("error"), out.Counts.Error)
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println(output.FormatHeader(1, "Table Health Report"))
	r.Println("")
	r.Println(output.FormatKeyValue("Target", out.Target))
	r.Println(output.FormatKeyValue("Summary", fmt.Sprintf("%d pass, %d warn, %d error", out.Counts.Pass, out.Counts.Warn, out.Counts.Error)))
	r.Println("")
	r.Println(output.FormatHeader(2, "Tables"))
	r.Println("")
	r.Println("| table | status | columns | detail |")
	r.Println("| --- | --- | --- | --- |")
	for _, check := range out.Checks {
		r.Printf("| %s | %s | %d | %s |\n", check.Table, check.Status, check.Columns, strings.ReplaceAll(check.Detail, "|", `\|`))
	}
}

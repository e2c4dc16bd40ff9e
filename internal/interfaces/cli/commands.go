package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/medicamentos-api/internal/application/dto"
)

// ── top ──────────────────────────────────────────────────────────────────────

func newTopCmd(svc func() *Services) *cobra.Command {
	var (
		n        int
		district string
	)
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Top N medicamentos (general o de un distrito)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var (
				rows []dto.ProductTotalDTO
				err  error
			)
			if district == "" {
				rows, err = svc().Dashboard.GetTopProducts(ctx, n)
			} else {
				rows, err = svc().Dashboard.GetDistrictTopProducts(ctx, district, n)
			}
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "#\tPRODUTO\tQUANTIDADE")
			for _, r := range rows {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", r.Rank, r.Product, r.Quantity.String())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&n, "n", "n", 0, "cantidad de productos (default REPORT_TOP_N)")
	cmd.Flags().StringVar(&district, "district", "", "limitar al distrito indicado")
	return cmd
}

// ── districts ────────────────────────────────────────────────────────────────

func newDistrictsCmd(svc func() *Services) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "districts",
		Short: "Top K medicamentos de cada distrito",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := svc().Dashboard.GetTopPerDistrict(cmd.Context(), k)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "DISTRITO\t#\tPRODUTO\tQUANTIDADE")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.District, r.Rank, r.Product, r.Quantity.String())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&k, "k", "k", 0, "productos por distrito (default REPORT_TOP_PER_DISTRICT)")
	return cmd
}

// ── stock ────────────────────────────────────────────────────────────────────

func newStockCmd(svc func() *Services) *cobra.Command {
	var req dto.StockRequest
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Tabla de criticidad por unidad y producto",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := svc().Dashboard.GetStock(cmd.Context(), req)
			if err != nil {
				return err
			}
			for _, w := range out.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "aviso: %s\n", w.Message)
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "UNIDADE\tDISTRITO\tPRODUTO\tQUANTIDADE\tCRITICIDADE")
			for _, r := range out.Rows {
				d := "-"
				if r.District != nil {
					d = *r.District
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Unit, d, r.Product, r.Quantity.String(), r.Criticality)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d filas\n", out.Total)
			return nil
		},
	}
	addSelectionFlags(cmd, &req.District, &req.Unit, &req.Criticality)
	return cmd
}

// ── criticality ──────────────────────────────────────────────────────────────

func newCriticalityCmd(svc func() *Services) *cobra.Command {
	return &cobra.Command{
		Use:   "criticality",
		Short: "Número de productos por distrito y nivel de criticidad",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := svc().Dashboard.GetCriticalityByDistrict(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "DISTRITO\tCRITICIDADE\tPRODUTOS")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", r.District, r.Criticality, r.Count)
			}
			return tw.Flush()
		},
	}
}

// ── pdf ──────────────────────────────────────────────────────────────────────

func newPDFCmd(svc func() *Services) *cobra.Command {
	var (
		req    dto.DashboardRequest
		output string
	)
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Exporta el tablero en PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, filename, err := svc().Report.ExportPDF(cmd.Context(), req)
			if err != nil {
				return err
			}
			if output == "" {
				output = filename
			}
			if err := os.WriteFile(output, b, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s (%d bytes)\n", output, len(b))
			return nil
		},
	}
	addSelectionFlags(cmd, &req.District, &req.Unit, &req.Criticality)
	cmd.Flags().IntVar(&req.TopN, "top-n", 0, "tamaño de los rankings")
	cmd.Flags().StringVarP(&output, "output", "o", "", "archivo de salida (default medicamentos_<distrito>.pdf)")
	return cmd
}

func addSelectionFlags(cmd *cobra.Command, district, unit, criticality *string) {
	cmd.Flags().StringVar(district, "district", "", "distrito")
	cmd.Flags().StringVar(unit, "unit", "", "unidad o 'all'")
	cmd.Flags().StringVar(criticality, "criticality", "", "critical|alert|stocked o 'all'")
	_ = cmd.RegisterFlagCompletionFunc("criticality", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return strings.Fields("all critical alert stocked"), cobra.ShellCompDirectiveNoFileComp
	})
}

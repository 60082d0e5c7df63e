package app

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/readeck/ditherpunk/pkg/dither"
)

func init() {
	rootCmd.AddCommand(kernelsCmd)
}

var kernelsCmd = &cobra.Command{
	Use:   "kernels",
	Short: "Lists the error diffusion matrices",
	Args:  cobra.NoArgs,
	Run:   listKernels,
}

func listKernels(c *cobra.Command, _ []string) {
	w := c.OutOrStdout()
	name := color.New(color.Bold, color.FgHiWhite)
	info := color.New(color.FgCyan)

	for _, x := range dither.KernelNames() {
		k, _ := dither.LookupKernel(x)
		name.Fprintf(w, "%-20s", x)
		info.Fprintf(w, " %2d taps", len(k))
		fmt.Fprintf(w, "  total weight %.4g\n", k.Sum())
	}
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bcdetect/internal/features"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List the model's input features in training order",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		schema := features.BreastCancer()

		fmt.Fprintf(out, "%3s  %-26s  %8s  %10s  %s\n", "#", "Name", "Min", "Default", "Required")
		fmt.Fprintln(out, strings.Repeat("─", 64))

		for i, sp := range schema.Specs() {
			fmt.Fprintf(out, "%3d  %-26s  %8s  %10s  %v\n",
				i+1, sp.Name, formatBound(sp.Min), formatBound(sp.Default), sp.Required)
		}

		fmt.Fprintf(out, "\n%d features\n", schema.Len())
		return nil
	},
}

func formatBound(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

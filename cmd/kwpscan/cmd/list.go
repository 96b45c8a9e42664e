// go-kwp6227
// Copyright (c) 2026 The Voldiag Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-kwp6227.
//
// go-kwp6227 is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-kwp6227 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-kwp6227; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/voldiag/go-kwp6227/detection"
)

var (
	green  = color.New(color.FgGreen).SprintfFunc()
	yellow = color.New(color.FgYellow).SprintfFunc()
	red    = color.New(color.FgRed).SprintfFunc()
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List serial ports that look like K-line adapters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ports, err := detection.Detect()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			fmt.Println(yellow("no serial ports found"))
			return nil
		}

		for _, p := range ports {
			marker := " "
			if p.Likely {
				marker = green("*")
			}
			line := fmt.Sprintf("%s %-16s", marker, p.Path)
			if p.Name != "" {
				line += " " + p.Name
			}
			if p.VIDPID != "" {
				line += " [" + p.VIDPID + "]"
			}
			if p.SerialNumber != "" {
				line += " sn:" + p.SerialNumber
			}
			fmt.Println(line)
		}
		fmt.Println()
		fmt.Println(green("*"), "= known K-line bridge chip")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

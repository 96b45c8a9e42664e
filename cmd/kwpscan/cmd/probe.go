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

	"github.com/spf13/cobra"

	kwp6227 "github.com/voldiag/go-kwp6227"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Wake up the ECU and report the keyword bytes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, err := openSession(cmd)
		if err != nil {
			return fmt.Errorf("%s: %w", red("init failed"), err)
		}
		defer sess.Stop()

		fmt.Println(green("bus initialized"))
		if s, ok := sess.(*kwp6227.Session); ok {
			kb1, kb2 := s.KeyBytes()
			target, source := s.Addresses()
			fmt.Printf("  keyword bytes: %02X %02X\n", kb1, kb2)
			fmt.Printf("  ECU 0x%02X, tester 0x%02X, %d bps\n", target, source, s.Bitrate())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

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
	"time"

	"github.com/spf13/cobra"

	kwp6227 "github.com/voldiag/go-kwp6227"
)

var reqCmd = &cobra.Command{
	Use:   "req <byte> [byte ...]",
	Short: "Send one request and print the response",
	Long: `Send a single request to the ECU and print the response payload.
Bytes are given in hex, e.g.: kwpscan -p /dev/ttyUSB0 req A5 01`,
	Args: cobra.RangeArgs(1, kwp6227.MaxPayload),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := parseHexBytes(args)
		if err != nil {
			return err
		}
		timeout, err := cmd.Flags().GetDuration(flagTimeout)
		if err != nil {
			return err
		}

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Stop()

		start := time.Now()
		resp, err := sess.Request(kwp6227.NewMessage(data...), timeout)
		if err != nil {
			return fmt.Errorf("%s: %w", red("request failed"), err)
		}

		fmt.Printf("%s (%v)\n", green("response"), time.Since(start).Round(time.Millisecond))
		fmt.Printf("  src 0x%02X dst 0x%02X: % X\n", resp.Source, resp.Destination, resp.Data)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reqCmd)
}

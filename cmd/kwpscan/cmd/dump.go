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
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	kwp6227 "github.com/voldiag/go-kwp6227"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <byte> [byte ...]",
	Short: "Repeat a request and collect the response payloads",
	Long: `Send the same request over and over and append each response payload
to a file. Useful for reading out memory or freeze frames one block at a time
with ECUs that auto-increment their read pointer.`,
	Args: cobra.RangeArgs(1, kwp6227.MaxPayload),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := parseHexBytes(args)
		if err != nil {
			return err
		}
		count, err := cmd.Flags().GetInt("count")
		if err != nil {
			return err
		}
		outPath, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		timeout, err := cmd.Flags().GetDuration(flagTimeout)
		if err != nil {
			return err
		}

		out, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()

		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Stop()

		bar := newBar(count, "dumping ECU")
		start := time.Now()
		var written int

		for i := 0; i < count; i++ {
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			resp, err := sess.Request(kwp6227.NewMessage(data...), timeout)
			if err != nil {
				return fmt.Errorf("%s after %d responses: %w", red("dump aborted"), i, err)
			}
			n, err := out.Write(resp.Data)
			if err != nil {
				return err
			}
			written += n
			bar.Add(1)
		}
		bar.Finish()

		fmt.Printf("\n%s: %d bytes to %s in %v\n",
			green("done"), written, outPath, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func newBar(length int, text string) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		length,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription(text),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func init() {
	dumpCmd.Flags().IntP("count", "c", 16, "number of requests to send")
	dumpCmd.Flags().StringP("out", "o", "dump.bin", "output file")
	rootCmd.AddCommand(dumpCmd)
}

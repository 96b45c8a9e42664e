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
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	kwp6227 "github.com/voldiag/go-kwp6227"
	"github.com/voldiag/go-kwp6227/transport/kline"
)

var rootCmd = &cobra.Command{
	Use:          "kwpscan",
	Short:        "Keyword D3 B0 diagnostic console",
	Long:         `kwpscan talks to Volvo-era ECUs over a K-line serial adapter using the keyword D3 B0 protocol.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute(ctx context.Context) {
	rootCmd.ExecuteContext(ctx)
}

const (
	flagPort    = "port"
	flagTarget  = "target"
	flagSource  = "source"
	flagBitrate = "bitrate"
	flagTimeout = "timeout"
)

func init() {
	log.SetFlags(log.Lshortfile | log.LstdFlags)

	pf := rootCmd.PersistentFlags()
	pf.StringP(flagPort, "p", "", "serial port of the K-line adapter")
	pf.StringP(flagTarget, "t", "0x10", "ECU address")
	pf.StringP(flagSource, "s", "0x13", "tester address")
	pf.IntP(flagBitrate, "b", 10400, "K-line bitrate")
	pf.DurationP(flagTimeout, "T", time.Second, "request timeout")
}

// addrFlag parses one of the address flags, accepting 0x-prefixed hex as
// well as plain decimal.
func addrFlag(cmd *cobra.Command, name string) (byte, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(raw, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s address %q: %w", name, raw, err)
	}
	return byte(v), nil
}

// openSession opens the configured port and runs the slow init against the
// target ECU. The caller owns the returned session and must Stop it.
func openSession(cmd *cobra.Command) (kwp6227.Protocol, error) {
	port, err := cmd.Flags().GetString(flagPort)
	if err != nil {
		return nil, err
	}
	if port == "" {
		return nil, fmt.Errorf("no port given, try %q to find one", "kwpscan list")
	}

	target, err := addrFlag(cmd, flagTarget)
	if err != nil {
		return nil, err
	}
	source, err := addrFlag(cmd, flagSource)
	if err != nil {
		return nil, err
	}
	bitrate, err := cmd.Flags().GetInt(flagBitrate)
	if err != nil {
		return nil, err
	}
	timeout, err := cmd.Flags().GetDuration(flagTimeout)
	if err != nil {
		return nil, err
	}

	tr, err := kline.New(port)
	if err != nil {
		return nil, err
	}

	sess, err := kwp6227.OpenProtocol("kwp6227", tr,
		kwp6227.WithBitrate(bitrate),
		kwp6227.WithRequestTimeout(timeout),
	)
	if err != nil {
		tr.Close()
		return nil, err
	}

	if err := sess.Connect(target, source); err != nil {
		tr.Close()
		return nil, err
	}
	return sess, nil
}

// parseHexBytes turns command arguments like "a1" or "0x3E" into raw bytes.
func parseHexBytes(args []string) ([]byte, error) {
	data := make([]byte, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseUint(arg, 16, 8)
		if err != nil {
			v, err = strconv.ParseUint(arg, 0, 8)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid byte %q", arg)
		}
		data = append(data, byte(v))
	}
	return data, nil
}

// Copyright 2026 The GNP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	libconfig "github.com/gnprouter/gnp/private/config"
	"github.com/gnprouter/gnp/router/config"
)

func newShow() *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the interfaces and routes of a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg config.Config
			if err := libconfig.Load(cfgFile, &cfg); err != nil {
				return err
			}
			cmd.SilenceUsage = true
			return show(cmd.OutOrStdout(), &cfg)
		},
	}
	addConfigFlag(cmd.Flags(), &cfgFile)
	if err := cmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
	return cmd
}

func show(w io.Writer, cfg *config.Config) error {
	ifaces, err := cfg.InterfaceTable()
	if err != nil {
		return err
	}
	routes, err := cfg.RouteTable(ifaces)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Interfaces:")
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"ID", "Name", "Addresses", "Groups", "Multicast", "Up"})
	for _, ifc := range ifaces.Interfaces() {
		t.Append([]string{
			strconv.Itoa(ifc.ID),
			ifc.Name,
			joinAddrs(ifc.Addrs),
			joinAddrs(ifc.Groups),
			strconv.FormatBool(ifc.Multicast),
			strconv.FormatBool(ifc.Up),
		})
	}
	t.Render()

	fmt.Fprintln(w, "Routes:")
	t = tablewriter.NewWriter(w)
	t.SetHeader([]string{"Prefix", "Interface", "Next hop"})
	for _, e := range routes.Entries() {
		nextHop := "on-link"
		if e.NextHop.IsValid() {
			nextHop = e.NextHop.String()
		}
		t.Append([]string{e.Prefix.String(), e.Interface.Name, nextHop})
	}
	t.Render()
	return nil
}

func joinAddrs[T fmt.Stringer](addrs []T) string {
	s := make([]string, 0, len(addrs))
	for _, a := range addrs {
		s = append(s, a.String())
	}
	return strings.Join(s, ",")
}

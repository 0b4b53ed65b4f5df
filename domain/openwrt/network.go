package openwrt

import (
	"fmt"
	"net"
	"net/netip"
	"strings"

	"go4.org/netipx"

	helpers "github.com/honeybbq/netjsonuci/domain/utils"
	"github.com/honeybbq/netjsonuci/pkg/ast/uci"
	"github.com/honeybbq/netjsonuci/pkg/nxerrors"
)

// interface keys translated explicitly; everything else passes through
var interfaceKeys = []string{
	"name", "network", "type", "addresses", "wireless", "bridge_members",
}

// address keys consumed to build ipaddr/ip6addr/proto
var addressKeys = []string{"address", "mask", "proto", "family"}

func renderGlobals(doc map[string]any) ([]*uci.Section, error) {
	globals := helpers.GetMap(doc, "globals")
	if len(globals) == 0 {
		return nil, nil
	}
	return []*uci.Section{helpers.CopyExcept(globals).Section("globals", "globals")}, nil
}

// renderInterfaces fans every interface out into one section per address.
func renderInterfaces(doc map[string]any) ([]*uci.Section, error) {
	dns := helpers.JoinScalars(helpers.GetList(doc, "dns_servers"), " ")
	dnsSearch := helpers.JoinScalars(helpers.GetList(doc, "dns_search"), " ")

	var sections []*uci.Section
	for _, iface := range helpers.GetMaps(doc, "interfaces") {
		name := helpers.GetString(iface, "name")
		uciName := helpers.GetString(iface, "network")
		if uciName == "" {
			uciName = helpers.LogicalName(name)
		}
		isBridge := helpers.GetString(iface, "type") == "bridge"
		bridgeMembers := helpers.JoinScalars(helpers.GetList(iface, "bridge_members"), " ")

		addresses := helpers.GetMaps(iface, "addresses")
		if len(addresses) == 0 {
			// interfaces without addresses are still declared
			addresses = []map[string]any{{"proto": "none"}}
		}

		for i, address := range addresses {
			fields := helpers.CopyExcept(iface, interfaceKeys...)
			// only true values are renamed, false ones pass through
			if autostart, _ := helpers.GetBool(iface, "autostart"); autostart {
				fields.SetBoolValue("auto", true)
				delete(fields, "autostart")
			}
			if disabled, _ := helpers.GetBool(iface, "disabled"); disabled {
				fields.SetBoolValue("enabled", false)
				delete(fields, "disabled")
			}

			sectionName := uciName
			if i > 0 {
				sectionName = fmt.Sprintf("%s_%d", uciName, i+1)
			}

			proto := helpers.GetString(address, "proto")
			if proto == "" {
				proto = "static"
			}
			var addressKey string
			switch helpers.GetString(address, "family") {
			case "ipv4":
				addressKey = "ipaddr"
			case "ipv6":
				addressKey = "ip6addr"
				if proto == "dhcp" {
					proto = "dhcpv6"
				}
			}

			fields.SetString("ifname", name)
			fields.SetString("proto", proto)
			fields.SetString("dns", dns)
			fields.SetString("dns_search", dnsSearch)

			switch {
			case isBridge && i == 0:
				fields.SetString("type", "bridge")
				if bridgeMembers != "" {
					fields.SetString("ifname", bridgeMembers)
				} else {
					fields.SetBoolValue("bridge_empty", true)
					delete(fields, "ifname")
				}
			case isBridge:
				// OpenWrt names the bridge device br-<name>
				fields.SetString("ifname", "br-"+name)
			}

			if value, ok := addressValue(address); ok && addressKey != "" {
				fields.SetString(addressKey, value)
			}
			fields.Merge(helpers.CopyExcept(address, addressKeys...))

			sections = append(sections, fields.Section("interface", sectionName))
		}
	}
	return sections, nil
}

// addressValue returns "address/mask"; a half-specified address yields nothing.
func addressValue(address map[string]any) (string, bool) {
	addr, okAddr := helpers.GetScalar(address, "address")
	mask, okMask := helpers.GetScalar(address, "mask")
	if !okAddr || !okMask {
		return "", false
	}
	return addr + "/" + mask, true
}

func renderRoutes(doc map[string]any) ([]*uci.Section, error) {
	var sections []*uci.Section
	for i, route := range helpers.GetMaps(doc, "routes") {
		destination := helpers.GetString(route, "destination")
		prefix, err := parseDestination(destination)
		if err != nil {
			return nil, nxerrors.NewSchemaViolation(nxerrors.Violation{
				Path:   fmt.Sprintf("/routes/%d/destination", i),
				Reason: err.Error(),
			})
		}

		fields := helpers.CopyExcept(route, "name", "device", "next", "destination", "cost")
		fields.SetString("interface", helpers.GetString(route, "device"))
		fields.SetString("gateway", helpers.GetString(route, "next"))
		fields.SetValue("metric", route["cost"])

		sectionType := "route6"
		if prefix.Addr().Is4() {
			sectionType = "route"
			fields.SetString("target", prefix.Addr().String())
			fields.SetString("netmask", net.IP(netipx.PrefixIPNet(prefix).Mask).String())
		} else {
			fields.SetString("target", prefix.Masked().String())
		}

		sections = append(sections, fields.Section(sectionType, fmt.Sprintf("route%d", i+1)))
	}
	return sections, nil
}

// parseDestination accepts a CIDR or a bare address (host route).
func parseDestination(dest string) (netip.Prefix, error) {
	if dest == "" {
		return netip.Prefix{}, fmt.Errorf("destination is empty")
	}
	if strings.Contains(dest, "/") {
		prefix, err := netip.ParsePrefix(dest)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("invalid CIDR %q", dest)
		}
		return unmap(prefix), nil
	}
	addr, err := netip.ParseAddr(dest)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid address %q", dest)
	}
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func unmap(prefix netip.Prefix) netip.Prefix {
	if prefix.Addr().Is4In6() && prefix.Bits() >= 96 {
		return netip.PrefixFrom(prefix.Addr().Unmap(), prefix.Bits()-96)
	}
	return prefix
}

// renderIPRules emits anonymous rule/rule6 sections. dest decides the
// family when both src and dest are set; no address at all means IPv4.
func renderIPRules(doc map[string]any) ([]*uci.Section, error) {
	var sections []*uci.Section
	for i, rule := range helpers.GetMaps(doc, "ip_rules") {
		ipv6 := false
		for _, key := range []string{"src", "dest"} {
			value := helpers.GetString(rule, key)
			if value == "" {
				continue
			}
			addr, err := netipx.ParsePrefixOrAddr(value)
			if err != nil {
				return nil, nxerrors.NewSchemaViolation(nxerrors.Violation{
					Path:   fmt.Sprintf("/ip_rules/%d/%s", i, key),
					Reason: fmt.Sprintf("invalid network %q", value),
				})
			}
			// later keys win, so dest overrides src
			ipv6 = addr.Is6() && !addr.Is4In6()
		}
		sectionType := "rule"
		if ipv6 {
			sectionType = "rule6"
		}
		sections = append(sections, helpers.CopyExcept(rule).Section(sectionType, ""))
	}
	return sections, nil
}

func renderSwitches(doc map[string]any) ([]*uci.Section, error) {
	var sections []*uci.Section
	for _, sw := range helpers.GetMaps(doc, "switch") {
		name := helpers.LogicalName(helpers.GetString(sw, "name"))
		sections = append(sections, helpers.CopyExcept(sw, "vlan").Section("switch", name))
		for j, vlan := range helpers.GetMaps(sw, "vlan") {
			vlanName := fmt.Sprintf("%s_vlan%d", name, j+1)
			sections = append(sections, helpers.CopyExcept(vlan).Section("switch_vlan", vlanName))
		}
	}
	return sections, nil
}

package openwrt

import (
	"fmt"
	"strings"

	helpers "github.com/honeybbq/netjsonuci/domain/utils"
	"github.com/honeybbq/netjsonuci/pkg/ast/uci"
	"github.com/honeybbq/netjsonuci/pkg/nxerrors"
)

// NetJSON wireless mode -> UCI mode
var wifiModes = map[string]string{
	"access_point": "ap",
	"station":      "sta",
	"adhoc":        "adhoc",
	"wds":          "wds",
	"monitor":      "monitor",
	"802.11s":      "mesh",
}

// NetJSON encryption protocol -> UCI encryption
var encryptionProtocols = map[string]string{
	"wep_open":             "wep-open",
	"wep_shared":           "wep-shared",
	"wpa_personal":         "psk",
	"wpa2_personal":        "psk2",
	"wpa_personal_mixed":   "psk-mixed",
	"wpa_enterprise":       "wpa",
	"wpa2_enterprise":      "wpa2",
	"wpa_enterprise_mixed": "wpa-mixed",
	"wps":                  "psk",
}

// advanced wifi-iface options with a different UCI name
var wifiRenames = [][2]string{
	{"ack_distance", "distance"},
	{"rts_threshold", "rts"},
	{"frag_threshold", "frag"},
}

var wifiKeys = []string{
	"radio", "mode", "encryption", "network",
	"ack_distance", "rts_threshold", "frag_threshold",
}

func renderRadios(doc map[string]any) ([]*uci.Section, error) {
	var sections []*uci.Section
	for i, radio := range helpers.GetMaps(doc, "radios") {
		driver := helpers.GetString(radio, "driver")
		protocol := helpers.GetString(radio, "protocol")
		channel, _ := helpers.GetNumber(radio, "channel")

		fields := helpers.CopyExcept(radio, "name", "driver", "protocol", "channel_width", "tx_power")
		fields.SetString("type", driver)
		fields.SetValue("txpower", radio["tx_power"])

		hwmode, err := HWMode(protocol, channel)
		if err != nil {
			return nil, nxerrors.NewUnmappedValue(fmt.Sprintf("/radios/%d/protocol", i), "protocol", protocol)
		}
		fields.SetString("hwmode", hwmode)

		switch driver {
		case "mac80211":
			width, _ := helpers.GetScalar(radio, "channel_width")
			fields.SetString("htmode", HTMode(protocol, width))
		case "ath9k", "ath5k":
			fields.SetValue("chanbw", radio["channel_width"])
		}
		if country := helpers.GetString(radio, "country"); country != "" {
			fields["country"] = strings.ToUpper(country)
		}

		sections = append(sections, fields.Section("wifi-device", helpers.GetString(radio, "name")))
	}
	return sections, nil
}

// HWMode maps an 802.11 protocol to the UCI hwmode. 802.11n picks the band
// from the channel (<= 13 is 2.4 GHz), 802.11ac is always 5 GHz.
func HWMode(protocol string, channel float64) (string, error) {
	switch protocol {
	case "802.11a":
		return "11a", nil
	case "802.11b":
		return "11b", nil
	case "802.11g":
		return "11g", nil
	case "802.11n":
		if channel <= 13 {
			return "11g", nil
		}
		return "11a", nil
	case "802.11ac":
		return "11a", nil
	}
	return "", fmt.Errorf("unknown protocol %q", protocol)
}

// HTMode returns HT<width> for 802.11n, VHT<width> for 802.11ac and
// NONE for legacy protocols.
func HTMode(protocol, width string) string {
	switch protocol {
	case "802.11n":
		return "HT" + width
	case "802.11ac":
		return "VHT" + width
	}
	return "NONE"
}

func renderWifiInterfaces(doc map[string]any) ([]*uci.Section, error) {
	var sections []*uci.Section
	for i, iface := range helpers.GetMaps(doc, "interfaces") {
		wireless := helpers.GetMap(iface, "wireless")
		if wireless == nil {
			continue
		}
		name := helpers.GetString(iface, "name")

		fields := helpers.CopyExcept(wireless, wifiKeys...)
		fields.SetString("device", helpers.GetString(wireless, "radio"))

		mode := helpers.GetString(wireless, "mode")
		uciMode, ok := wifiModes[mode]
		if !ok {
			return nil, nxerrors.NewUnmappedValue(fmt.Sprintf("/interfaces/%d/wireless/mode", i), "mode", mode)
		}
		fields["mode"] = uciMode

		for _, rename := range wifiRenames {
			fields.SetValue(rename[1], wireless[rename[0]])
		}
		fields.Merge(Encryption(helpers.GetMap(wireless, "encryption")))
		fields.SetString("network", wifiNetwork(iface, wireless))

		sections = append(sections, fields.Section("wifi-iface", "wifi_"+helpers.SanitizeIdentifier(name)))
	}
	return sections, nil
}

// wifiNetwork attaches the iface to its explicit networks, or to the
// interface's own logical network.
func wifiNetwork(iface, wireless map[string]any) string {
	networks := helpers.JoinScalars(helpers.GetList(wireless, "network"), " ")
	if networks == "" {
		networks = helpers.GetString(wireless, "network")
	}
	if networks == "" {
		networks = helpers.GetString(iface, "network")
	}
	if networks == "" {
		networks = helpers.GetString(iface, "name")
	}
	return strings.ReplaceAll(networks, ".", "_")
}

// Encryption converts a NetJSON encryption object into wifi-iface options.
// Unknown protocols are passed through unchanged.
func Encryption(enc map[string]any) map[string]any {
	out := map[string]any{}
	if len(enc) == 0 {
		return out
	}
	if disabled, _ := helpers.GetBool(enc, "disabled"); disabled {
		return out
	}
	protocol := helpers.GetString(enc, "protocol")
	if protocol == "" || protocol == "none" {
		return out
	}
	encryption, ok := encryptionProtocols[protocol]
	if !ok {
		encryption = protocol
	}

	if strings.HasPrefix(protocol, "wep") {
		key, _ := helpers.GetScalar(enc, "key")
		out["key"] = "1"
		if protocol == "wep_open" {
			// ASCII key
			key = "s:" + key
		}
		out["key1"] = key
	} else {
		out["key"] = enc["key"]
	}

	if ciphers := helpers.JoinScalars(helpers.GetList(enc, "ciphers"), "+"); ciphers != "" {
		encryption += "+" + ciphers
	}
	out["encryption"] = encryption
	return out
}

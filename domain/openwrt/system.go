package openwrt

import (
	"fmt"

	helpers "github.com/honeybbq/netjsonuci/domain/utils"
	"github.com/honeybbq/netjsonuci/pkg/ast/uci"
)

// 系统默认值
const (
	DefaultHostname = "OpenWRT"
	DefaultTimezone = "Coordinated Universal Time"
)

func renderSystem(doc map[string]any) ([]*uci.Section, error) {
	general := helpers.GetMap(doc, "general")
	if len(general) == 0 {
		return nil, nil
	}
	fields := helpers.CopyExcept(general)
	if general["hostname"] == nil {
		fields["hostname"] = DefaultHostname
	}
	if general["timezone"] == nil {
		fields["timezone"] = DefaultTimezone
	}
	return []*uci.Section{fields.Section("system", "system")}, nil
}

func renderNTP(doc map[string]any) ([]*uci.Section, error) {
	ntp := helpers.GetMap(doc, "ntp")
	if len(ntp) == 0 {
		return nil, nil
	}
	return []*uci.Section{helpers.CopyExcept(ntp).Section("timeserver", "ntp")}, nil
}

func renderLEDs(doc map[string]any) ([]*uci.Section, error) {
	var sections []*uci.Section
	for i, led := range helpers.GetMaps(doc, "led") {
		id := helpers.SanitizeIdentifier(helpers.GetString(led, "name"))
		if id == "" {
			id = fmt.Sprintf("%d", i+1)
		}
		sections = append(sections, helpers.CopyExcept(led).Section("led", "led_"+id))
	}
	return sections, nil
}

package chat

import "strings"

type scriptLine struct {
	sender string
	text   string
}

// Dispatch check-in scripts keyed by driver id, written by the safety team
// for drivers with recurring alert patterns. {name} and {location} are filled
// at open time. Drivers without a script get the generic template.
var driverScripts = map[string][]scriptLine{
	"DRV-1021": {
		{"Dispatch", "{name}, fatigue was detected around {location}. Confirm you're pulled over."},
		{"Dispatch", "Take 10 minutes before resuming. We'll monitor vitals."},
	},
	"DRV-1045": {
		{"Dispatch", "{name}, sensors flagged an impact in {location}. Are you safe?"},
		{"Dispatch", "Keep hazards on; we can send roadside if needed."},
	},
	"DRV-1052": {
		{"Dispatch", "Camera obstruction in {location}. Please check the lens feed, {name}."},
	},
	"DRV-1095": {
		{"Dispatch", "Speed alert in {location}. Please confirm current speed, {name}."},
	},
}

var genericScript = []scriptLine{
	{"Dispatch", "{name}, we received a safety alert near {location}. Please confirm you're safe."},
}

func scriptFor(driverID, driverName, zone string) []scriptLine {
	script, ok := driverScripts[driverID]
	if !ok {
		script = genericScript
	}
	if driverName == "" {
		driverName = "Driver"
	}
	if zone == "" {
		zone = "your last known zone"
	}
	out := make([]scriptLine, len(script))
	for i, line := range script {
		text := strings.ReplaceAll(line.text, "{name}", driverName)
		text = strings.ReplaceAll(text, "{location}", zone)
		out[i] = scriptLine{sender: line.sender, text: text}
	}
	return out
}

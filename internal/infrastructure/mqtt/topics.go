package mqtt

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// Topic prefixes. Every rig-calc topic lives under TopicPrefix.
const (
	TopicPrefix       = "rigcalc"
	TopicPrefixRig    = TopicPrefix + "/rig"
	TopicPrefixAlert  = TopicPrefix + "/alert"
	TopicPrefixSystem = TopicPrefix + "/system"
)

// Topics provides builders for rig-calc MQTT topics.
//
//	topics := mqtt.Topics{}
//	topics.CircuitAlert("Stage_Right")
//	// Returns: "rigcalc/alert/circuit/Stage_Right"
type Topics struct{}

// RigSummary returns the retained rig summary topic.
//
// Example: rigcalc/rig/summary
func (Topics) RigSummary() string {
	return TopicPrefixRig + "/summary"
}

// UniverseAlert returns the retained alert topic for an over-capacity universe.
//
// Example: rigcalc/alert/universe/2
func (Topics) UniverseAlert(universe int) string {
	return fmt.Sprintf("%s/universe/%d", TopicPrefixAlert, universe)
}

// CircuitAlert returns the retained alert topic for a loaded circuit.
// The name is passed through TopicSegment.
//
// Example: rigcalc/alert/circuit/Upstage_Truss~657148bd
func (Topics) CircuitAlert(circuit string) string {
	return fmt.Sprintf("%s/circuit/%s", TopicPrefixAlert, TopicSegment(circuit))
}

// SystemStatus returns the online/offline status topic, also used for the LWT.
//
// Example: rigcalc/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// TopicSegment makes a free-text name safe as a single topic level.
// Level separators, wildcards and whitespace become underscores; an empty
// result becomes "_". When that rewrites the name, "~" and the FNV-1a hash
// of the trimmed name are appended, so "Stage Right" and "Stage_Right" get
// distinct topics.
func TopicSegment(name string) string {
	name = strings.TrimSpace(name)
	seg := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '+' || r == '#':
			return '_'
		case unicode.IsSpace(r):
			return '_'
		case r == 0:
			return -1
		}
		return r
	}, name)
	if seg == "" {
		return "_"
	}
	if seg != name {
		h := fnv.New32a()
		h.Write([]byte(name)) //nolint:errcheck // hash writes never fail
		seg = fmt.Sprintf("%s~%08x", seg, h.Sum32())
	}
	return seg
}

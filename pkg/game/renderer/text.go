// Package renderer holds what the demo frontends share: the message catalog,
// the markup formatter and the status and binding listings.
package renderer

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"

	"actionpad/pkg/engine/input"
	"actionpad/pkg/game/state"
)

const catalogEN = `
msgid "TITLE"
msgstr "actionpad"

msgid "PHASE"
msgstr "Phase"

msgid "POSITION"
msgstr "Position"

msgid "JUMPS"
msgstr "Jumps"

msgid "ACTIVE"
msgstr "Active"

msgid "NONE"
msgstr "(none)"

msgid "UNBOUND"
msgstr "(unbound)"

msgid "BINDINGS"
msgstr "Bindings"

msgid "HINT_idle"
msgstr "Press ACTION{start} to begin."

msgid "HINT_playing"
msgstr "Move around, ACTION{jump}, or ACTION{quit}."

msgid "HINT_game-over"
msgstr "Game over. ACTION{restart} or ACTION{exit}."

msgid "GOODBYE"
msgstr "Goodbye."

msgid "MESSAGES"
msgstr "Messages"

msgid "NO_MESSAGES"
msgstr "(no messages)"
`

var (
	catalogMu sync.RWMutex
	catalog   = parseCatalog([]byte(catalogEN))
)

func parseCatalog(data []byte) *gotext.Po {
	po := gotext.NewPo()
	po.Parse(data)
	return po
}

// LoadCatalog replaces the built-in English messages with a .po file.
func LoadCatalog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	po := parseCatalog(data)
	catalogMu.Lock()
	catalog = po
	catalogMu.Unlock()
	return nil
}

// T returns the message for key, or key itself when it has none.
func T(key string) string {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	return catalog.Get(key)
}

var markup = regexp.MustCompile(`([a-zA-Z_]*){([a-zA-Z0-9 _,:\-]+)}`)

// FormatText formats a message and expands its markup:
//
//	GT{KEY}        catalog lookup
//	ACTION{jump}   action name
//	DEVICE{pad}    device name
//	PHASE{idle}    phase name
func FormatText(st Styler, msg string, args ...any) string {
	ret := msg
	if len(args) > 0 {
		ret = fmt.Sprintf(msg, args...)
	}

	for _, match := range markup.FindAllStringSubmatch(ret, -1) {
		function := match[1]
		operand := match[2]

		var val string
		switch function {
		case "GT":
			val = FormatText(st, T(operand))
		case "ACTION":
			val = st.StyleText(operand, StyleAction)
		case "DEVICE":
			val = st.StyleText(operand, StyleDevice)
		case "PHASE":
			val = st.StyleText(operand, StylePhase)
		default:
			val = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, 1)
	}

	return ret
}

// StatusLines describes the game for a status panel.
func StatusLines(st Styler, g *state.Game, active input.ActionSet) []string {
	actions := strings.Join(active.Slice(), ", ")
	if actions == "" {
		actions = T("NONE")
	}
	return []string{
		FormatText(st, "GT{PHASE}: PHASE{%s}", g.Phase),
		FormatText(st, "GT{POSITION}: %d,%d   GT{JUMPS}: %d", g.X, g.Y, g.Jumps),
		FormatText(st, "GT{ACTIVE}: ") + st.StyleText(actions, StyleActionShort),
		FormatText(st, "GT{HINT_"+g.Phase.String()+"}"),
	}
}

// BindingLines lists the profile's bindings, one line per action:
//
//	jump: gamepad:a, keyboard:space
func BindingLines(st Styler, p *input.Profile) []string {
	byAction := p.ByAction()
	actions := make([]string, 0, len(byAction))
	for action := range byAction {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	lines := make([]string, 0, len(actions))
	for _, action := range actions {
		codes := strings.Join(byAction[action], ", ")
		if codes == "" {
			codes = T("UNBOUND")
		}
		lines = append(lines, fmt.Sprintf("%s: %s", st.StyleText(action, StyleAction), st.StyleText(codes, StyleSubtle)))
	}
	return lines
}

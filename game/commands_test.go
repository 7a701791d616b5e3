package game

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zond/tabletop/color"
	"github.com/zond/tabletop/command"
	"github.com/zond/tabletop/transcript"
)

func threePlayers(t *testing.T) *testGame {
	tg := newTestGame(t, Options{})
	tg.connect("Eitan", true)
	tg.connect("Gimli", false)
	tg.connect("Justin", false)
	tg.flush()
	return tg
}

func TestSay(t *testing.T) {
	tg := threePlayers(t)
	tg.run("Eitan", "say hello")
	tg.expect("Eitan", `You say, "Hello."`)
	tg.expect("Gimli", `Eitan says, "Hello."`)
	tg.expect("Justin", `Eitan says, "Hello."`)

	tg.run("Eitan", "say   what  is   this?  ")
	tg.expect("Gimli", `Eitan says, "What  is   this?"`)
	tg.flush()

	tg.run("Eitan", "say -l elven such a snob")
	tg.expect("Gimli", `[in elven] Eitan says, "Such a snob."`)
	tg.expect("Eitan", `[in elven] You say, "Such a snob."`)
}

func TestSayTargeted(t *testing.T) {
	tg := threePlayers(t)
	tg.run("Eitan", "say -l dwarven -t gimli Sup brosef?")
	tg.expect("Eitan", `[in dwarven to gimli] You say, "Sup brosef?"`)
	tg.expect("Gimli", `[in dwarven to gimli] Eitan says, "Sup brosef?"`)
	tg.expect("Justin")

	tg.run("Eitan", "say -t Nobody hello")
	tg.expect("Eitan")
	tg.expect("Gimli")
}

func TestSayMalformed(t *testing.T) {
	tg := threePlayers(t)
	for _, line := range []string{"say", "say -l elven", "say -t Gimli", "say -l elven -t Gimli", "say -t Gimli -t Justin hi"} {
		if got := tg.run("Eitan", line); got.Result != command.Malformed {
			t.Errorf("%q resulted in %v, want malformed", line, got.Result)
		}
	}
	tg.expect("Gimli")
}

func TestWhisper(t *testing.T) {
	tg := threePlayers(t)
	tg.run("Gimli", "whisper hello")
	tg.expect("Gimli", `You whisper, "Hello."`)
	tg.expect("Eitan", `Gimli whispers, "Hello."`)
	tg.expect("Justin", `Gimli whispers, "Hello."`)

	tg.run("Gimli", "whisper -t Justin Hello your majesty.")
	tg.expect("Gimli", `[to Justin] You whisper, "Hello your majesty."`)
	tg.expect("Justin", `[to Justin] Gimli whispers, "Hello your majesty."`)
	tg.expect("Eitan")
}

func TestShorthandEquivalence(t *testing.T) {
	tests := []struct {
		short     string
		canonical string
	}{
		{"'hi", "say hi"},
		{"#20", "roll 1d20"},
		{";smiles.", "emote ;smiles."},
		{"*hey", "ooc hey"},
		{"@RED text", "display -c RED text"},
		{"$King say hi", "mask King say hi"},
	}
	outputs := func(t *testing.T, line string) map[string][]string {
		tg := threePlayers(t)
		if got := tg.run("Eitan", line); got.Result != command.Handled {
			t.Errorf("%q resulted in %v", line, got.Result)
		}
		result := map[string][]string{}
		for name, conn := range tg.conns {
			result[name] = conn.raw()
		}
		return result
	}
	for _, tt := range tests {
		t.Run(tt.short, func(t *testing.T) {
			short, canonical := outputs(t, tt.short), outputs(t, tt.canonical)
			if diff := cmp.Diff(canonical, short); diff != "" {
				t.Errorf("%q and %q differ (-canonical +short):\n%s", tt.short, tt.canonical, diff)
			}
			if len(short["Gimli"]) == 0 {
				t.Errorf("%q produced no output for others", tt.short)
			}
		})
	}
}

func TestPM(t *testing.T) {
	tg := threePlayers(t)
	tg.run("Gimli", "pm eitan hey  there")
	tg.expect("Eitan", "[Gimli>>] hey  there")
	tg.expect("Gimli", "[>>Eitan] hey  there")
	tg.expect("Justin")

	if got := tg.run("Gimli", "pm Nobody hey"); got.Result != command.Handled {
		t.Errorf("pm to unknown player resulted in %v, want handled", got.Result)
	}
	tg.expect("Gimli")
	if got := tg.run("Gimli", "pm Eitan"); got.Result != command.Malformed {
		t.Errorf("pm without message resulted in %v, want malformed", got.Result)
	}
}

func TestWho(t *testing.T) {
	tg := threePlayers(t)
	tg.run("Gimli", "who")
	lines := tg.conns["Gimli"].lines()
	if len(lines) != 1 {
		t.Fatalf("got %d messages, want 1: %q", len(lines), lines)
	}
	for _, want := range []string{"Currently connected players:", "Eitan", "(DM)", "Gimli", "Justin", "Three players connected."} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("who output %q lacks %q", lines[0], want)
		}
	}
	if strings.Count(lines[0], "(DM)") != 1 {
		t.Errorf("who output %q should flag exactly one DM", lines[0])
	}
}

func TestLogout(t *testing.T) {
	tg := threePlayers(t)
	gimli := tg.ents["Gimli"]
	conn := tg.conns["Gimli"]
	if got := tg.run("Gimli", "logout"); got.Result != command.Handled {
		t.Errorf("logout resulted in %v", got.Result)
	}
	tg.expect("Gimli", "[SERVER] You have quit the session.")
	tg.expect("Eitan", "[SERVER] Gimli has quit the session.")
	tg.expect("Justin", "[SERVER] Gimli has quit the session.")
	if !gimli.Departed() {
		t.Errorf("logged out entity should be departed")
	}
	if conn.closes != 1 {
		t.Errorf("connection closed %d times, want 1", conn.closes)
	}
	if _, found := tg.Instance().Find("Gimli"); found {
		t.Errorf("logged out entity should not be connected")
	}

	tg.run("Eitan", "say anyone there?")
	tg.expect("Gimli")
	tg.expect("Justin", `Eitan says, "Anyone there?"`)
	tg.expect("Eitan", `You say, "Anyone there?"`)
	tg.flush()

	tg.Disconnect(context.Background(), gimli)
	tg.expect("Eitan")
}

func TestLogoutClosedConnection(t *testing.T) {
	tg := threePlayers(t)
	tg.conns["Justin"].Close()
	if got := tg.run("Justin", "logout"); got.Result != command.Handled {
		t.Errorf("logout over closed connection resulted in %v", got.Result)
	}
	tg.expect("Eitan", "[SERVER] Justin has quit the session.")
	if len(tg.Instance().Connections()) != 2 {
		t.Errorf("Justin should be gone")
	}
}

func TestEmote(t *testing.T) {
	tg := threePlayers(t)
	tests := []struct {
		line string
		want string
	}{
		{"emote In a wild abandon, ; breaks into a fit of giggles.", ">In a wild abandon, Eitan breaks into a fit of giggles."},
		{";laughs heartily.", ">Eitan laughs heartily."},
		{"emote ;laughs.", ">Eitan laughs."},
		{";'s pipe smokes.", ">Eitan's pipe smokes."},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			tg.run("Eitan", tt.line)
			tg.expect("Eitan", tt.want)
			tg.expect("Gimli", tt.want)
		})
	}
	if got := tg.run("Eitan", "emote laughs"); got.Result != command.Malformed {
		t.Errorf("emote without placeholder resulted in %v, want malformed", got.Result)
	}
}

func TestOOC(t *testing.T) {
	tg := threePlayers(t)
	tg.run("Eitan", "ooc stop  metagaming")
	tg.expect("Gimli", "[OOC Eitan (DM)]: stop  metagaming")
	tg.flush()
	tg.run("Justin", "*Is that a d6?")
	tg.expect("Eitan", "[OOC Justin]: Is that a d6?")
}

func TestRoll(t *testing.T) {
	tg := threePlayers(t)
	tg.run("Justin", "roll 2d6 damage")
	want := "[DICE (damage)] Justin rolls 2d6.\n  3\n  5"
	tg.expect("Justin", want)
	tg.expect("Gimli", want)
	tg.expect("Eitan", want)

	tg.run("Justin", "hroll 2d6")
	tg.expect("Justin", "[DICE] Justin rolls 2d6.\n  3\n  5")
	tg.expect("Gimli")

	tg.run("Justin", "#4")
	tg.expect("Gimli", "[DICE] Justin rolls 1d4.\n  3")
}

func TestRollRange(t *testing.T) {
	tg := newTestGame(t, Options{Dice: nil})
	tg.Game.dice = func(sides int) int {
		return sides
	}
	tg.connect("Justin", false)
	tg.run("Justin", "hroll 3d8")
	tg.expect("Justin", "[DICE] Justin rolls 3d8.\n  8\n  8\n  8")

	g, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		if v := g.dice(6); v < 1 || v > 6 {
			t.Fatalf("default dice rolled %d on a d6", v)
		}
	}
}

func TestParseDice(t *testing.T) {
	tests := []struct {
		notation string
		num      int
		sides    int
		ok       bool
	}{
		{"1d20", 1, 20, true},
		{"2d6", 2, 6, true},
		{"100d1000", 100, 1000, true},
		{"d6", 0, 0, false},
		{"2d", 0, 0, false},
		{"2x6", 0, 0, false},
		{"0d6", 0, 0, false},
		{"2d0", 0, 0, false},
		{"-1d6", 0, 0, false},
		{"101d6", 0, 0, false},
		{"2d6d8", 0, 0, false},
		{"1D20", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			num, sides, ok := parseDice(tt.notation)
			if num != tt.num || sides != tt.sides || ok != tt.ok {
				t.Errorf("parseDice(%q) = %d, %d, %v, want %d, %d, %v", tt.notation, num, sides, ok, tt.num, tt.sides, tt.ok)
			}
		})
	}
}

func TestMask(t *testing.T) {
	tg := threePlayers(t)
	if got := tg.run("Eitan", "mask King say Hi"); got.Result != command.Handled {
		t.Errorf("mask resulted in %v", got.Result)
	}
	tg.expect("Eitan", `King says, "Hi."`)
	tg.expect("Gimli", `King says, "Hi."`)
	tg.expect("Justin", `King says, "Hi."`)

	tg.run("Eitan", "$john ;bows with a flourish.")
	tg.expect("Gimli", ">John bows with a flourish.")
	tg.expect("Eitan", ">John bows with a flourish.")
	tg.flush()

	tg.run("Eitan", "mask King look")
	tg.expect("Eitan", "The scene is blank.")
	tg.expect("Gimli")

	if _, found := tg.Instance().Find("King"); found {
		t.Errorf("masked identity should never be connected")
	}
}

func TestMaskDenied(t *testing.T) {
	tg := threePlayers(t)
	if got := tg.run("Gimli", "mask King say Hi"); got.Result != command.Handled {
		t.Errorf("denied mask resulted in %v, want handled", got.Result)
	}
	tg.expect("Gimli", dmOnlyMessage)
	tg.expect("Eitan")
	tg.expect("Justin")
}

func TestMaskFailures(t *testing.T) {
	tg := threePlayers(t)
	if got := tg.run("Eitan", "mask King"); got.Result != command.Malformed {
		t.Errorf("mask without command resulted in %v", got.Result)
	}
	tg.expect("Eitan", `That's not how "mask" works. Type "help mask" for details.`)

	if got := tg.run("Eitan", "mask King dance"); got.Result != command.Unknown {
		t.Errorf("masked unknown command resulted in %v", got.Result)
	}
	tg.expect("Eitan", `Unknown command: "dance". Type "help" for a list of commands.`)

	if got := tg.run("Eitan", "mask King roll banana"); got.Result != command.Malformed {
		t.Errorf("masked malformed command resulted in %v", got.Result)
	}
	tg.expect("Eitan", `That's not how "roll" works. Type "help roll" for details.`)
	tg.expect("Gimli")
}

func TestMaskDepth(t *testing.T) {
	tg := threePlayers(t)
	line := strings.Repeat("mask a ", command.MaxDepth) + "say hi"
	if got := tg.run("Eitan", line); got.Result != command.Handled {
		t.Errorf("%d nested masks resulted in %v", command.MaxDepth, got.Result)
	}
	tg.expect("Gimli", `A says, "Hi."`)
	tg.flush()

	line = strings.Repeat("mask a ", command.MaxDepth+1) + "say hi"
	if got := tg.run("Eitan", line); got.Result != command.TooDeep {
		t.Errorf("%d nested masks resulted in %v, want too deep", command.MaxDepth+1, got.Result)
	}
	tg.expect("Eitan", "Too many nested commands, giving up.")
	tg.expect("Gimli")
}

func TestDisplay(t *testing.T) {
	tg := threePlayers(t)
	tg.run("Eitan", "display -c RED  target   object  with   extra   spaces")
	want := color.Colorize("target   object  with   extra   spaces", color.Red)
	for _, name := range []string{"Eitan", "Gimli", "Justin"} {
		if diff := cmp.Diff([]string{want}, tg.conns[name].raw()); diff != "" {
			t.Errorf("%s got unexpected display (-want +got):\n%s", name, diff)
		}
	}

	tg.run("Eitan", "display The flame licks at the prisoner's cheek.")
	tg.expect("Gimli", "The flame licks at the prisoner's cheek.")
	tg.flush()

	tg.run("Eitan", "display -c YELLOW -t Justin Spiritual voices wail.")
	tg.expect("Justin", "Spiritual voices wail.")
	tg.expect("Eitan", "Spiritual voices wail.")
	tg.expect("Gimli")

	tg.run("Eitan", "display -t Justin -c bcyan Cold.")
	tg.expect("Justin", "Cold.")
	tg.flush()

	if got := tg.run("Eitan", "display -c YELLOW -t Nobody boo"); got.Result != command.Handled {
		t.Errorf("display to unknown target resulted in %v, want handled", got.Result)
	}
	tg.expect("Eitan")
	tg.expect("Gimli")

	for _, line := range []string{"display", "display -c mauve text", "display -c RED", "display -c RED -t Justin"} {
		if got := tg.run("Eitan", line); got.Result != command.Malformed {
			t.Errorf("%q resulted in %v, want malformed", line, got.Result)
		}
	}
}

func TestStatusGlance(t *testing.T) {
	tg := threePlayers(t)
	tg.run("Eitan", "status Limping behind the group")
	tg.expect("Eitan", ">You are limping behind the group.")
	tg.expect("Gimli", ">Eitan is limping behind the group.")

	tg.run("Gimli", "glance eitan")
	tg.expect("Gimli", "You glance at Eitan.", "  Eitan is limping behind the group.")

	tg.run("Eitan", "status clear")
	tg.expect("Eitan", "You've cleared your status.")
	tg.expect("Gimli")
	if got := tg.ents["Eitan"].Status(); got != "" {
		t.Errorf("status after clear = %q", got)
	}

	tg.run("Gimli", "glance Eitan")
	tg.expect("Gimli", "You glance at Eitan.")

	tg.run("Gimli", "glance Sauron")
	tg.expect("Gimli", `There is no player "Sauron" here.`)

	if got := tg.run("Gimli", "glance"); got.Result != command.Malformed {
		t.Errorf("glance without target resulted in %v", got.Result)
	}
	if got := tg.run("Gimli", "status"); got.Result != command.Malformed {
		t.Errorf("status without text resulted in %v", got.Result)
	}
}

func TestGlanceIgnoresMasks(t *testing.T) {
	tg := threePlayers(t)
	tg.run("Eitan", "mask King status Brooding.")
	tg.flush()
	tg.run("Gimli", "glance King")
	tg.expect("Gimli", `There is no player "King" here.`)
}

func TestColors(t *testing.T) {
	tg := threePlayers(t)
	tg.run("Gimli", "colors")
	lines := tg.conns["Gimli"].lines()
	if len(lines) != 1 {
		t.Fatalf("got %d messages, want 1", len(lines))
	}
	rows := strings.Split(lines[0], "\n")
	if len(rows) != len(color.Names())+1 {
		t.Errorf("got %d rows, want %d", len(rows), len(color.Names())+1)
	}
	if rows[0] != "    List of colors:" || rows[1] != "        DEFAULT" {
		t.Errorf("unexpected colors output %q", rows[:2])
	}
}

func TestHelp(t *testing.T) {
	tg := threePlayers(t)
	tg.run("Gimli", "help")
	lines := tg.conns["Gimli"].lines()
	if len(lines) != 3 {
		t.Fatalf("got %d messages, want 3: %q", len(lines), lines)
	}
	if lines[0] != "There are help files on the following commands.\nType help <command> for details." {
		t.Errorf("unexpected help header %q", lines[0])
	}
	rows := strings.Split(lines[1], "\n")
	if len(rows) != 5 {
		t.Errorf("got %d rows, want 5: %q", len(rows), rows)
	}
	if want := fmt.Sprintf("    %-15s%-15s%-15s%-15s", "colors", "display", "emote", "erase"); rows[0] != want {
		t.Errorf("unexpected first row %q, want %q", rows[0], want)
	}
	if want := fmt.Sprintf("    %-15s%-15s%-15s%s", "status", "whisper", "who", "wipe"); rows[4] != want {
		t.Errorf("unexpected last row %q", rows[4])
	}
	if !strings.Contains(lines[2], "' = say") || !strings.Contains(lines[2], "; = emote ;") {
		t.Errorf("unexpected shorthand list %q", lines[2])
	}

	tg.run("Gimli", "help say")
	lines = tg.conns["Gimli"].lines()
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "help file for: say\n------------------\n") || !strings.Contains(lines[0], "syntax: say") {
		t.Errorf("unexpected help say output %q", lines)
	}

	tg.run("Gimli", "help dance")
	tg.expect("Gimli", "There is no helpfile for dance.")

	for _, name := range tg.dispatcher.Registry().Names() {
		cmd, _ := tg.dispatcher.Registry().Lookup(name)
		if !strings.Contains(cmd.Usage, "syntax: "+name) {
			t.Errorf("usage of %q lacks a syntax line", name)
		}
	}
}

func TestRecap(t *testing.T) {
	tg := newTestGame(t, Options{Transcript: &memoryTranscript{}})
	tg.connect("Eitan", true)
	tg.connect("Gimli", false)
	tg.run("Eitan", "say hello")
	tg.run("Eitan", "hroll 1d20")
	tg.run("Eitan", "pm Gimli secret")
	tg.flush()

	tg.run("Gimli", "recap")
	lines := tg.conns["Gimli"].lines()
	if len(lines) != 1 {
		t.Fatalf("got %d messages, want 1: %q", len(lines), lines)
	}
	rows := strings.Split(lines[0], "\n")
	if len(rows) != 4 || rows[0] != "Recently:" ||
		!strings.HasSuffix(rows[1], "[SERVER] Eitan has joined the session.") ||
		!strings.HasSuffix(rows[2], "[SERVER] Gimli has joined the session.") ||
		!strings.HasSuffix(rows[3], `Eitan says, "Hello."`) {
		t.Errorf("unexpected recap %q", rows)
	}

	tg.run("Gimli", "recap 1")
	lines = tg.conns["Gimli"].lines()
	if len(lines) != 1 || strings.Count(lines[0], "\n") != 1 {
		t.Errorf("recap 1 = %q", lines)
	}

	for _, line := range []string{"recap 0", "recap 51", "recap many", "recap 1 2"} {
		if got := tg.run("Gimli", line); got.Result != command.Malformed {
			t.Errorf("%q resulted in %v, want malformed", line, got.Result)
		}
	}
}

func TestRecapWithoutTranscript(t *testing.T) {
	tg := threePlayers(t)
	tg.run("Gimli", "recap")
	tg.expect("Gimli", "No transcript is kept for this session.")
}

func TestRecapSQLite(t *testing.T) {
	ctx := context.Background()
	store, err := transcript.Open(ctx, filepath.Join(t.TempDir(), "transcript.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	tg := newTestGame(t, Options{Transcript: store})
	tg.connect("Eitan", true)
	tg.run("Eitan", "paint title Inferno Cave")
	tg.run("Eitan", "ooc brb")
	tg.flush()
	tg.run("Eitan", "recap 2")
	lines := tg.conns["Eitan"].lines()
	if len(lines) != 1 {
		t.Fatalf("got %d messages, want 1", len(lines))
	}
	rows := strings.Split(lines[0], "\n")
	if len(rows) != 3 || !strings.HasSuffix(rows[1], "Eitan paints a scene.") || !strings.HasSuffix(rows[2], "[OOC Eitan (DM)]: brb") {
		t.Errorf("unexpected recap %q", rows)
	}
}

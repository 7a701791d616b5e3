package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rodaine/table"
	"github.com/zond/tabletop/audit"
	"github.com/zond/tabletop/color"
	"github.com/zond/tabletop/command"
	"github.com/zond/tabletop/lang"
)

const (
	maxDice     = 100
	maxSides    = 1000
	helpColumns = 4
	helpWidth   = 15
	recapLines  = 10
	maxRecap    = 50

	dmOnlyMessage = "Whoa there... This is a DM power! Bad!"
)

type cmd = command.Command[*Entity]

func (g *Game) commands() []cmd {
	return []cmd{
		{Name: "help", Usage: helpUsage, Handler: g.help},
		{Name: "say", Usage: sayUsage, Handler: g.say},
		{Name: "whisper", Usage: whisperUsage, Handler: g.whisper},
		{Name: "pm", Usage: pmUsage, Handler: g.pm},
		{Name: "who", Usage: whoUsage, Handler: g.who},
		{Name: "logout", Usage: logoutUsage, Handler: g.logout},
		{Name: "emote", Usage: emoteUsage, Handler: g.emote},
		{Name: "ooc", Usage: oocUsage, Handler: g.ooc},
		{Name: "roll", Usage: rollUsage, Handler: g.roll},
		{Name: "hroll", Usage: hrollUsage, Handler: g.roll},
		{Name: "mask", Usage: maskUsage, Handler: g.mask},
		{Name: "display", Usage: displayUsage, Handler: g.display},
		{Name: "status", Usage: statusUsage, Handler: g.status},
		{Name: "glance", Usage: glanceUsage, Handler: g.glance},
		{Name: "colors", Usage: colorsUsage, Handler: g.colors},
		{Name: "paint", Usage: paintUsage, Handler: g.paint},
		{Name: "erase", Usage: eraseUsage, Handler: g.erase},
		{Name: "wipe", Usage: wipeUsage, Handler: g.wipe},
		{Name: "look", Usage: lookUsage, Handler: g.look},
		{Name: "recap", Usage: recapUsage, Handler: g.recap},
	}
}

// requireDM refuses non DM actors. A refusal is a handled command, not a
// malformed one.
func (g *Game) requireDM(args *Args) bool {
	if args.Actor.IsDM() {
		return true
	}
	args.Actor.Send(dmOnlyMessage)
	g.audit.Log(args.Context(), "DM_DENIED", audit.Denied{
		Actor:   args.Actor.Name(),
		Command: args.Name,
	})
	return false
}

func (g *Game) help(args *Args) bool {
	registry := g.dispatcher.Registry()
	if len(args.Tokens) == 1 {
		b := &strings.Builder{}
		b.WriteString("    ")
		for idx, name := range registry.Names() {
			fmt.Fprintf(b, "%-*s", helpWidth, name)
			if (idx+1)%helpColumns == 0 {
				b.WriteString("\n    ")
			}
		}
		markers := command.Markers()
		keys := make([]string, 0, len(markers))
		for marker := range markers {
			keys = append(keys, marker)
		}
		sort.Strings(keys)
		shorthands := make([]string, 0, len(keys))
		for _, marker := range keys {
			shorthands = append(shorthands, fmt.Sprintf("%s = %s", marker, strings.TrimSpace(markers[marker])))
		}
		args.Actor.Send("There are help files on the following commands.\nType help <command> for details.")
		args.Actor.Send(strings.TrimRight(b.String(), " \n"))
		args.Actor.Send("Shorthands: " + strings.Join(shorthands, ", "))
		return true
	}
	name := args.Tokens[1]
	cmd, found := registry.Lookup(name)
	if !found {
		args.Actor.Send(fmt.Sprintf("There is no helpfile for %s.", name))
		return true
	}
	title := "help file for: " + name
	args.Actor.Send(color.Colorize(title+"\n"+strings.Repeat("-", len(title)), color.Green) + cmd.Usage)
	return true
}

func (g *Game) say(args *Args) bool {
	return g.speak(args, "say", "says", color.White)
}

func (g *Game) whisper(args *Args) bool {
	return g.speak(args, "whisper", "whispers", color.DGray)
}

// speak implements say and whisper. With a target only the target and the
// speaker hear it.
func (g *Game) speak(args *Args, selfVerb string, otherVerb string, textColor string) bool {
	flags, next, ok := parseFlags(args.Tokens, "-l", "-t")
	if !ok {
		return false
	}
	markings := []string{}
	if language, found := flags["-l"]; found {
		markings = append(markings, "in "+language)
	}
	audience := Audience(Everyone)
	targetName, targeted := flags["-t"]
	if targeted {
		markings = append(markings, "to "+targetName)
		target, found := args.Actor.Instance().Find(targetName)
		audience = targetAudience(args.Actor, target, found)
	}
	marking := ""
	if len(markings) > 0 {
		marking = color.Colorize("["+strings.Join(markings, " ")+"] ", color.Yellow)
	}
	msg := lang.Sentence(args.Rest(next))
	self := marking + color.Colorize(fmt.Sprintf("You %s, \"%s\"", selfVerb, msg), textColor)
	others := marking + color.Colorize(fmt.Sprintf("%s %s, \"%s\"", args.Actor.Name(), otherVerb, msg), textColor)
	if targeted {
		args.Actor.Instance().Broadcast(audience, func(recipient *Entity) string {
			if recipient == args.Actor {
				return self
			}
			return others
		})
	} else {
		args.Actor.Instance().Announce(args.Context(), args.Actor, self, others)
	}
	return true
}

func (g *Game) pm(args *Args) bool {
	if len(args.Tokens) < 3 {
		return false
	}
	target, found := args.Actor.Instance().Find(args.Tokens[1])
	if !found {
		return true
	}
	msg := args.Rest(2)
	target.Send(color.Colorize(fmt.Sprintf("[%s>>] %s", args.Actor.Name(), msg), color.Purple))
	args.Actor.Send(color.Colorize(fmt.Sprintf("[>>%s] %s", target.Name(), msg), color.Purple))
	return true
}

func (g *Game) who(args *Args) bool {
	connections := args.Actor.Instance().Connections()
	b := &strings.Builder{}
	b.WriteString(color.Colorize("Currently connected players:", color.BBlue))
	b.WriteString("\n")
	t := table.New("Name", "Role").WithWriter(b).WithPadding(4)
	for _, e := range connections {
		role := ""
		if e.IsDM() {
			role = color.Colorize("(DM)", color.BRed)
		}
		t.AddRow(e.Name(), role)
	}
	t.Print()
	b.WriteString(lang.Capitalize(lang.Card(len(connections), "player")) + " connected.")
	args.Actor.Send(b.String())
	return true
}

func (g *Game) logout(args *Args) bool {
	actor := args.Actor
	instance := actor.Instance()
	if !actor.Masked() {
		actor.Send(color.Colorize("[SERVER] You have quit the session.", color.BYellow))
	}
	left := instance.Leave(actor)
	instance.Broadcast(Except(actor), func(*Entity) string {
		return color.Colorize(fmt.Sprintf("[SERVER] %s has quit the session.", actor.Name()), color.BYellow)
	})
	if left {
		g.audit.Log(args.Context(), "SESSION_END", audit.SessionEnd{
			Name:  actor.Name(),
			Cause: "logout",
		})
	}
	if !actor.Masked() {
		actor.terminate()
	}
	return true
}

func (g *Game) emote(args *Args) bool {
	if len(args.Tokens) < 2 {
		return false
	}
	text := args.Rest(1)
	if !strings.Contains(text, ";") {
		return false
	}
	name := args.Actor.Name()
	if after := text[1:]; text[0] == ';' {
		if r, _ := utf8.DecodeRuneInString(after); unicode.IsLetter(r) {
			text = name + " " + after
		}
	}
	text = strings.ReplaceAll(text, ";", name)
	args.Actor.Instance().Shout(args.Context(), args.Actor, color.Colorize(">"+text, color.DGray))
	return true
}

func (g *Game) ooc(args *Args) bool {
	if len(args.Tokens) < 2 {
		return false
	}
	name := args.Actor.Name()
	if args.Actor.IsDM() {
		name += " (DM)"
	}
	marking := color.Colorize(fmt.Sprintf("[OOC %s]: ", name), color.BRed)
	args.Actor.Instance().Shout(args.Context(), args.Actor, marking+args.Rest(1))
	return true
}

// parseDice parses "<number>d<sides>".
func parseDice(notation string) (int, int, bool) {
	parts := strings.Split(notation, "d")
	if len(parts) != 2 {
		return 0, 0, false
	}
	num, err := strconv.Atoi(parts[0])
	if err != nil || num < 1 || num > maxDice {
		return 0, 0, false
	}
	sides, err := strconv.Atoi(parts[1])
	if err != nil || sides < 1 || sides > maxSides {
		return 0, 0, false
	}
	return num, sides, true
}

func (g *Game) roll(args *Args) bool {
	if len(args.Tokens) < 2 {
		return false
	}
	num, sides, ok := parseDice(args.Tokens[1])
	if !ok {
		return false
	}
	purpose := lang.TrimRight(args.Rest(2))
	marking := "[DICE"
	if purpose != "" {
		marking += " (" + purpose + ")"
	}
	marking = color.Colorize(marking+"] ", color.BYellow)
	lines := []string{fmt.Sprintf("%s%s rolls %dd%d.", marking, args.Actor.Name(), num, sides)}
	for i := 0; i < num; i++ {
		lines = append(lines, fmt.Sprintf("  %d", g.dice(sides)))
	}
	msg := strings.Join(lines, "\n")
	if args.Name == "hroll" {
		args.Actor.Send(msg)
	} else {
		args.Actor.Instance().Shout(args.Context(), args.Actor, msg)
	}
	return true
}

func (g *Game) mask(args *Args) bool {
	if !g.requireDM(args) {
		return true
	}
	if len(args.Tokens) < 3 {
		return false
	}
	husk := args.Actor.Mask(lang.Capitalize(args.Tokens[1]))
	line := args.Rest(2)
	g.audit.Log(args.Context(), "DM_MASK", audit.Mask{
		Actor:   args.Actor.Name(),
		As:      husk.Name(),
		Command: line,
		Depth:   args.Depth(),
	})
	return args.Redispatch(line, husk).OK()
}

func (g *Game) display(args *Args) bool {
	flags, next, ok := parseFlags(args.Tokens, "-c", "-t")
	if !ok {
		return false
	}
	textColor := color.Default
	if name, found := flags["-c"]; found {
		if !color.Valid(name) {
			return false
		}
		textColor = strings.ToLower(name)
	}
	text := color.Colorize(args.Rest(next), textColor)
	if targetName, targeted := flags["-t"]; targeted {
		target, found := args.Actor.Instance().Find(targetName)
		args.Actor.Instance().Broadcast(targetAudience(args.Actor, target, found), func(*Entity) string {
			return text
		})
		return true
	}
	args.Actor.Instance().Shout(args.Context(), args.Actor, text)
	return true
}

func (g *Game) status(args *Args) bool {
	if len(args.Tokens) < 2 {
		return false
	}
	if args.Tokens[1] == "clear" {
		args.Actor.SetStatus("")
		args.Actor.Send("You've cleared your status.")
		return true
	}
	status := lang.Sentence(args.Rest(1))
	args.Actor.SetStatus(status)
	status = lang.Decapitalize(status)
	args.Actor.Instance().Announce(args.Context(), args.Actor,
		color.Colorize(">You are "+status, color.DGray),
		color.Colorize(fmt.Sprintf(">%s is %s", args.Actor.Name(), status), color.DGray))
	return true
}

func (g *Game) glance(args *Args) bool {
	if len(args.Tokens) < 2 {
		return false
	}
	target, found := args.Actor.Instance().Find(args.Tokens[1])
	if !found {
		args.Actor.Send(fmt.Sprintf("There is no player \"%s\" here.", args.Tokens[1]))
		return true
	}
	args.Actor.Send(fmt.Sprintf("You glance at %s.", target.Name()))
	if status := target.Status(); status != "" {
		args.Actor.Send(fmt.Sprintf("  %s is %s", target.Name(), color.Colorize(lang.Decapitalize(status), color.DGray)))
	}
	return true
}

func (g *Game) colors(args *Args) bool {
	lines := []string{"    List of colors:"}
	for _, name := range color.Names() {
		lines = append(lines, "        "+color.Colorize(strings.ToUpper(name), name))
	}
	args.Actor.Send(strings.Join(lines, "\n"))
	return true
}

func (g *Game) recap(args *Args) bool {
	n := recapLines
	if len(args.Tokens) > 2 {
		return false
	}
	if len(args.Tokens) == 2 {
		var err error
		if n, err = strconv.Atoi(args.Tokens[1]); err != nil || n < 1 || n > maxRecap {
			return false
		}
	}
	entries, kept, err := args.Actor.Instance().Recent(args.Context(), n)
	if !kept {
		args.Actor.Send("No transcript is kept for this session.")
		return true
	}
	if err != nil {
		args.Actor.Send("The transcript can't be read right now.")
		logError("reading transcript", err)
		return true
	}
	if len(entries) == 0 {
		args.Actor.Send("Nothing has happened yet.")
		return true
	}
	lines := []string{"Recently:"}
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("  [%s] %s", entry.Time().Format("15:04"), entry.Text))
	}
	args.Actor.Send(strings.Join(lines, "\n"))
	return true
}

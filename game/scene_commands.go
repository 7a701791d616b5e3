package game

import (
	"fmt"
	"strings"

	"github.com/zond/tabletop/audit"
	"github.com/zond/tabletop/color"
	"github.com/zond/tabletop/lang"
)

func (g *Game) paint(args *Args) bool {
	if !g.requireDM(args) {
		return true
	}
	if len(args.Tokens) < 3 {
		return false
	}
	flags, next, ok := parseFlags(args.Tokens, "-c")
	if !ok {
		return false
	}
	paintColor := color.Default
	if name, found := flags["-c"]; found {
		if !color.Valid(name) {
			return false
		}
		paintColor = strings.ToLower(name)
	}
	actor := args.Actor
	instance := actor.Instance()
	part := args.Tokens[next]
	switch part {
	case "title", "body":
		if next+1 >= len(args.Tokens) {
			return false
		}
		text := color.Colorize(lang.TrimRight(args.Rest(next+1)), paintColor)
		if part == "title" {
			instance.PaintSceneTitle(text)
		} else {
			instance.PaintSceneBody(text)
		}
		g.audit.Log(args.Context(), "DM_PAINT", audit.Paint{Actor: actor.Name(), Part: part})
		instance.Shout(args.Context(), actor, color.Colorize(actor.Name()+" paints a scene.", color.BRed))
	case "object":
		if next+2 >= len(args.Tokens) {
			return false
		}
		tag := args.Tokens[next+1]
		instance.PaintObject(tag, color.Colorize(lang.TrimRight(args.Rest(next+2)), paintColor))
		g.audit.Log(args.Context(), "DM_PAINT", audit.Paint{Actor: actor.Name(), Part: part, Tag: strings.ToLower(tag)})
		instance.Shout(args.Context(), actor, color.Colorize(fmt.Sprintf("%s paints a %s.", actor.Name(), tag), color.BRed))
	default:
		return false
	}
	return true
}

func (g *Game) erase(args *Args) bool {
	if !g.requireDM(args) {
		return true
	}
	if len(args.Tokens) < 2 {
		return false
	}
	actor := args.Actor
	instance := actor.Instance()
	switch args.Tokens[1] {
	case "scene":
		instance.WipeScene()
		g.audit.Log(args.Context(), "DM_ERASE", audit.Erase{Actor: actor.Name(), Part: "scene"})
		instance.Shout(args.Context(), actor, color.Colorize(actor.Name()+" erases the scene.", color.BRed))
	case "object":
		if len(args.Tokens) < 3 {
			return false
		}
		tag := args.Tokens[2]
		if instance.EraseObject(tag) {
			g.audit.Log(args.Context(), "DM_ERASE", audit.Erase{Actor: actor.Name(), Part: "object", Tag: strings.ToLower(tag)})
			instance.Shout(args.Context(), actor, color.Colorize(fmt.Sprintf("%s erases the %s.", actor.Name(), tag), color.BRed))
		}
	default:
		return false
	}
	return true
}

func (g *Game) wipe(args *Args) bool {
	if !g.requireDM(args) {
		return true
	}
	actor := args.Actor
	actor.Instance().Wipe()
	g.audit.Log(args.Context(), "DM_WIPE", audit.Wipe{Actor: actor.Name()})
	actor.Instance().Shout(args.Context(), actor, color.Colorize(actor.Name()+" wipes the whole scene.", color.BRed))
	return true
}

func (g *Game) look(args *Args) bool {
	instance := args.Actor.Instance()
	if len(args.Tokens) == 1 {
		if scene := instance.ViewScene(); scene == "" {
			args.Actor.Send("The scene is blank.")
		} else {
			args.Actor.Send(scene)
		}
		if tags := instance.ObjectTags(); len(tags) > 0 {
			args.Actor.Send(fmt.Sprintf("You notice %s.", lang.Enumerator{}.Do(tags...)))
		}
		return true
	}
	if description := instance.ViewObject(args.Tokens[1]); description == "" {
		args.Actor.Send(fmt.Sprintf("There is no \"%s\" in the scene.", args.Tokens[1]))
	} else {
		args.Actor.Send(description)
	}
	return true
}

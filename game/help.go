package game

const (
	helpUsage = `
Look up the help file of a command.

syntax: help [command]
        command - the command to read about, leave out to list all commands`

	sayUsage = `
Say something out loud, in character. The first letter is capitalized and a
period is added unless the message ends with punctuation.

syntax: say [-l <language>] [-t <target>] <message>
        language - the language you speak in
        target - who you speak to, only you and the target hear it
        message - what you say

examples:
    say hello
    >> Eitan says, "Hello."

    say -l elven such a snob
    >> [in elven] Eitan says, "Such a snob."

    say -l dwarven -t Gimli Sup brosef?
    >> [in dwarven to Gimli] Eitan says, "Sup brosef?"

Shorthand: start the line with ' (no space), as in 'Hello, everyone!`

	whisperUsage = `
Whisper something, in character. Works like say.

syntax: whisper [-l <language>] [-t <target>] <message>

examples:
    whisper -t king Hello your majesty.
    >> [to king] Eitan whispers, "Hello your majesty."`

	pmUsage = `
Send a private, out of character message. Only you and the recipient see it.

syntax: pm <player> <message>`

	whoUsage = `
List the players in the session. Dungeon masters are flagged.

syntax: who`

	logoutUsage = `
Leave the session.

syntax: logout`

	emoteUsage = `
Perform an emote. Every ; is replaced by your name.

syntax: emote <description containing ;>

examples:
    emote In a wild abandon, ; breaks into a fit of giggles.
    >> In a wild abandon, Eitan breaks into a fit of giggles.

Shorthand: start the line with ; (no space), as in ;laughs heartily.`

	oocUsage = `
Say something out of character to everyone.

syntax: ooc <message>

examples:
    ooc Is that a d6 or a d8?
    >> [OOC Justin]: Is that a d6 or a d8?

Shorthand: start the line with * (no space).`

	rollUsage = `
Roll dice where everyone can see it.

syntax: roll <number>d<sides> [purpose]

examples:
    roll 2d6 damage
    >> [DICE (damage)] Justin rolls 2d6.
    >>   3
    >>   5

Shorthand: #20 rolls a single twenty sided die.
Use hroll to roll where only you can see it.`

	hrollUsage = `
Roll dice where only you can see it.

syntax: hroll <number>d<sides> [purpose]`

	maskUsage = `
Run a command as if you were someone else. DM only.

syntax: mask <name> <command>

examples:
    mask King say Welcome to my domain!
    >> King says, "Welcome to my domain!"

Shorthand: $Nameless say Who am I?`

	displayUsage = `
Display text in a color, without any tags. Useful for descriptions.

syntax: display [-c <color>] [-t <target>] <text>
        color - see "colors"
        target - only you and the target see the text

Shorthand: @RED Blood trickles down the victim's nose.`

	statusUsage = `
Set your status, a passive in character state shown to those who glance at
you. Setting it tells everyone. "status clear" removes it quietly.

syntax: status <status|clear>

examples:
    status Limping behind the group.
    >> Eitan is limping behind the group.`

	glanceUsage = `
Glance at a player to see their status.

syntax: glance <player>`

	colorsUsage = `
List the colors that display and paint accept.

syntax: colors`

	paintUsage = `
Paint the scene title, the scene body, or an object that can be looked at.
DM only.

syntax: paint [-c <color>] title <text>
        paint [-c <color>] body <text>
        paint [-c <color>] object <tag> <text>

examples:
    paint -c BRED title Inferno Cave
    paint -c RED object flame A pillar of flame burns in the center.`

	eraseUsage = `
Erase the scene, or a painted object. DM only.

syntax: erase scene
        erase object <tag>`

	wipeUsage = `
Wipe the scene and every painted object. DM only.

syntax: wipe`

	lookUsage = `
Look at the scene, or at a painted object.

syntax: look [tag]`

	recapUsage = `
Show what was recently said and done in the session.

syntax: recap [count]
        count - how many lines to show, at most 50, default 10`
)

package game

// Audience selects the recipients of a broadcast.
type Audience func(*Entity) bool

// Everyone accepts all connected entities.
func Everyone(*Entity) bool {
	return true
}

// Only accepts the listed entities. Nil entries are ignored, so Only(nil)
// accepts nobody.
func Only(entities ...*Entity) Audience {
	return func(e *Entity) bool {
		for _, candidate := range entities {
			if candidate != nil && candidate == e {
				return true
			}
		}
		return false
	}
}

// Except accepts everyone but the listed entities.
func Except(entities ...*Entity) Audience {
	only := Only(entities...)
	return func(e *Entity) bool {
		return !only(e)
	}
}

// targetAudience is the audience of a message addressed to target: the
// target and the actor, or nobody when the target isn't connected.
func targetAudience(actor *Entity, target *Entity, found bool) Audience {
	if !found {
		return Only()
	}
	return Only(target, actor.sender())
}

// sender is the connected entity responsible for e's actions.
func (e *Entity) sender() *Entity {
	for e.puppeteer != nil {
		e = e.puppeteer
	}
	return e
}

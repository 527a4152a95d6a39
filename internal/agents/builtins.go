package agents

import "github.com/soochol/weave/internal/weave"

// BuiltinAgent is an in-process agent that publishes its own card.
type BuiltinAgent interface {
	weave.Invoker
	Card() weave.AgentCard
}

// Builtins returns the default in-process agent set.
func Builtins() []BuiltinAgent {
	return []BuiltinAgent{
		&TransformAgent{},
		NewWebAgent(nil),
		NewNewsAgent(),
		NewHTTPAgent(nil),
	}
}

// RegisterBuiltins registers every builtin in reg and returns their cards
// for publication in the capability directory.
func RegisterBuiltins(reg *Registry) []weave.AgentCard {
	var cards []weave.AgentCard
	for _, b := range Builtins() {
		card := b.Card()
		reg.Register(card.Name, b)
		cards = append(cards, card)
	}
	return cards
}

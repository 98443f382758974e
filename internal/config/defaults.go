package config

import "assassins/internal/game"

// defaultNames is the stock cast used when no game file is given
var defaultNames = []string{
	"Alice", "Bob", "Clara", "Diego", "Elena",
	"Felix", "Grace", "Hugo", "Iris", "Jonas",
	"Kira", "Leo", "Mona", "Nadia", "Oscar",
	"Priya", "Quentin", "Rosa", "Sam", "Tessa",
}

// defaultPersonalities rotate through the stock cast
var defaultPersonalities = []string{
	"bold and outspoken, quick to accuse",
	"quiet and cautious, watches before speaking",
	"charismatic and persuasive, loves an audience",
	"nervous and suspicious of everyone",
	"level-headed and analytical, argues from evidence",
	"warm and trusting, wants everyone to get along",
	"sarcastic and contrarian, pushes back on the crowd",
	"assertive and blunt, says exactly what they think",
	"reserved and thoughtful, speaks rarely but carefully",
	"dramatic and emotional, takes everything personally",
}

// DefaultCast builds a roster of n stock players
func DefaultCast(n int) []game.PlayerConfig {
	if n > len(defaultNames) {
		n = len(defaultNames)
	}
	cast := make([]game.PlayerConfig, n)
	for i := 0; i < n; i++ {
		cast[i] = game.PlayerConfig{
			Name:        defaultNames[i],
			Personality: defaultPersonalities[i%len(defaultPersonalities)],
		}
	}
	return cast
}

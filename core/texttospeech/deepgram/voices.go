package deepgram

type deepgramVoice string

const defaultVoice deepgramVoice = "aura-asteria-en"

type voiceInfo struct {
	name     string
	language string
}

var voices = map[deepgramVoice]voiceInfo{
	"aura-asteria-en": {name: "Asteria", language: "en-US"},
	"aura-luna-en":    {name: "Luna", language: "en-US"},
	"aura-stella-en":  {name: "Stella", language: "en-US"},
	"aura-athena-en":  {name: "Athena", language: "en-GB"},
	"aura-hera-en":    {name: "Hera", language: "en-US"},
	"aura-orion-en":   {name: "Orion", language: "en-US"},
	"aura-arcas-en":   {name: "Arcas", language: "en-US"},
	"aura-perseus-en": {name: "Perseus", language: "en-US"},
	"aura-angus-en":   {name: "Angus", language: "en-IE"},
	"aura-orpheus-en": {name: "Orpheus", language: "en-US"},
	"aura-helios-en":  {name: "Helios", language: "en-GB"},
	"aura-zeus-en":    {name: "Zeus", language: "en-US"},
}

// voiceOrder keeps listing deterministic.
var voiceOrder = []deepgramVoice{
	"aura-asteria-en", "aura-luna-en", "aura-stella-en", "aura-athena-en",
	"aura-hera-en", "aura-orion-en", "aura-arcas-en", "aura-perseus-en",
	"aura-angus-en", "aura-orpheus-en", "aura-helios-en", "aura-zeus-en",
}

func GetAvailableVoices() []deepgramVoice {
	return append([]deepgramVoice(nil), voiceOrder...)
}

func isKnownVoice(id string) bool {
	_, ok := voices[deepgramVoice(id)]
	return ok
}

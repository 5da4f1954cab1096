package script

// LandingDemo is the short arithmetic demo played on the landing screen.
func LandingDemo() Script {
	return Script{
		Name:     "landing-demo",
		Language: "en-US",
		Steps: []Step{
			{
				Text:  "Hi there! I'm your AI learning companion. Let's practice some math together!",
				Voice: "friendly",
			},
			{
				Text:           "What's 5 plus 3? Take your time and speak your answer when you're ready.",
				Voice:          "encouraging",
				RequiresAnswer: true,
				ExpectedAnswer: "8",
				Prompt:         "5 + 3",
			},
			{
				Text:  "Great job! That's exactly right - 5 plus 3 equals 8! You're doing amazing!",
				Voice: "celebrating",
			},
			{
				Text:           "Let's try something a bit more challenging. Can you tell me what 12 minus 7 is?",
				Voice:          "supportive",
				RequiresAnswer: true,
				ExpectedAnswer: "5",
				Prompt:         "12 - 7",
			},
			{
				Text:  "Wonderful! You got it right again! I love how you're thinking through each problem.",
				Voice: "proud",
			},
		},
	}
}

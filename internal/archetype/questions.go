package archetype

// Traits is a per-trait integer vector (raw deltas or sums)
type Traits struct {
	EnergyLevel  int
	Adaptability int
	Resilience   int
}

func (t Traits) add(o Traits) Traits {
	return Traits{
		EnergyLevel:  t.EnergyLevel + o.EnergyLevel,
		Adaptability: t.Adaptability + o.Adaptability,
		Resilience:   t.Resilience + o.Resilience,
	}
}

// Option is one answer choice; answer n selects Options[n-1]
type Option struct {
	Text  string
	Delta Traits
	Vote  Key
}

type Question struct {
	Prompt  string
	Options [4]Option
}

// Questions is the fixed onboarding quiz
var Questions = [QuestionCount]Question{
	{
		Prompt: "A free weekend suddenly opens up. You...",
		Options: [4]Option{
			{Text: "Plan a trip somewhere new", Delta: Traits{EnergyLevel: 2, Adaptability: 1}, Vote: Explorer},
			{Text: "Catch up on chores and rest", Delta: Traits{EnergyLevel: -1, Resilience: 1}, Vote: Guardian},
			{Text: "Stay in with a book or a film", Delta: Traits{EnergyLevel: -2}, Vote: Dreamer},
			{Text: "Sign up for a challenge or a class", Delta: Traits{EnergyLevel: 1, Resilience: 1}, Vote: Challenger},
		},
	},
	{
		Prompt: "Plans change at the last minute. You...",
		Options: [4]Option{
			{Text: "Push to keep the original plan", Delta: Traits{Adaptability: -1, Resilience: 1}, Vote: Challenger},
			{Text: "Happily improvise", Delta: Traits{Adaptability: 2}, Vote: Explorer},
			{Text: "Make a new plan right away", Delta: Traits{Adaptability: 1, Resilience: 1}, Vote: Guardian},
			{Text: "Feel unsettled for a while", Delta: Traits{Adaptability: -2}, Vote: Dreamer},
		},
	},
	{
		Prompt: "After a hard day you recover by...",
		Options: [4]Option{
			{Text: "Going out with friends", Delta: Traits{EnergyLevel: 2}, Vote: Explorer},
			{Text: "Following my usual routine", Delta: Traits{Resilience: 1}, Vote: Guardian},
			{Text: "Writing or daydreaming alone", Delta: Traits{EnergyLevel: -1, Resilience: -1}, Vote: Dreamer},
			{Text: "A hard workout", Delta: Traits{EnergyLevel: 1, Resilience: 2}, Vote: Challenger},
		},
	},
	{
		Prompt: "When a friend criticizes you...",
		Options: [4]Option{
			{Text: "Laugh and ask what they mean", Delta: Traits{Adaptability: 1, Resilience: 1}, Vote: Explorer},
			{Text: "Thank them and reflect calmly", Delta: Traits{Resilience: 2}, Vote: Guardian},
			{Text: "Replay it in my head for days", Delta: Traits{Resilience: -2}, Vote: Dreamer},
			{Text: "Argue my point", Delta: Traits{EnergyLevel: 1, Resilience: -1}, Vote: Challenger},
		},
	},
	{
		Prompt: "Your ideal workspace is...",
		Options: [4]Option{
			{Text: "A different cafe every day", Delta: Traits{EnergyLevel: 1, Adaptability: 2}, Vote: Explorer},
			{Text: "My own tidy desk", Delta: Traits{Adaptability: -1}, Vote: Guardian},
			{Text: "Somewhere quiet with a view", Delta: Traits{EnergyLevel: -1}, Vote: Dreamer},
			{Text: "Wherever the action is", Delta: Traits{EnergyLevel: 2}, Vote: Challenger},
		},
	},
	{
		Prompt: "Starting a new project, you first...",
		Options: [4]Option{
			{Text: "Jump in and experiment", Delta: Traits{EnergyLevel: 1, Adaptability: 1}, Vote: Explorer},
			{Text: "Write a checklist", Delta: Traits{Resilience: 1}, Vote: Guardian},
			{Text: "Imagine how it will feel when it is done", Delta: Traits{Adaptability: 1}, Vote: Dreamer},
			{Text: "Set an ambitious goal", Delta: Traits{EnergyLevel: 1, Resilience: 1}, Vote: Challenger},
		},
	},
	{
		Prompt: "Something goes wrong in public. You...",
		Options: [4]Option{
			{Text: "Quietly fix it", Delta: Traits{Adaptability: 1, Resilience: 1}, Vote: Guardian},
			{Text: "Turn it into a funny story", Delta: Traits{Resilience: 2}, Vote: Explorer},
			{Text: "Wish you could disappear", Delta: Traits{EnergyLevel: -1, Resilience: -2}, Vote: Dreamer},
			{Text: "Get frustrated, then try again", Delta: Traits{EnergyLevel: 1, Resilience: 1}, Vote: Challenger},
		},
	},
	{
		Prompt: "Your energy is highest...",
		Options: [4]Option{
			{Text: "When meeting new people", Delta: Traits{EnergyLevel: 2}, Vote: Explorer},
			{Text: "In the morning, on my routine", Delta: Traits{EnergyLevel: 1}, Vote: Guardian},
			{Text: "Late at night, alone", Delta: Traits{EnergyLevel: -2}, Vote: Dreamer},
			{Text: "Right before a deadline", Delta: Traits{EnergyLevel: 1, Resilience: 1}, Vote: Challenger},
		},
	},
	{
		Prompt: "A friend asks you to try an unfamiliar food...",
		Options: [4]Option{
			{Text: "Yes, immediately", Delta: Traits{Adaptability: 2}, Vote: Explorer},
			{Text: "Check what is in it first", Delta: Traits{Adaptability: -1}, Vote: Guardian},
			{Text: "Only if they try it with me", Delta: Traits{Adaptability: 1}, Vote: Dreamer},
			{Text: "Make it a contest", Delta: Traits{EnergyLevel: 1, Adaptability: 1}, Vote: Challenger},
		},
	},
	{
		Prompt: "When you fail at something...",
		Options: [4]Option{
			{Text: "Try again harder, right away", Delta: Traits{Resilience: 2}, Vote: Challenger},
			{Text: "Try a completely different approach", Delta: Traits{Adaptability: 2, Resilience: 1}, Vote: Explorer},
			{Text: "Review what went wrong, step by step", Delta: Traits{Resilience: 1}, Vote: Guardian},
			{Text: "Need time alone before trying again", Delta: Traits{Resilience: -1}, Vote: Dreamer},
		},
	},
	{
		Prompt: "Your friends would describe you as...",
		Options: [4]Option{
			{Text: "Adventurous", Delta: Traits{EnergyLevel: 1, Adaptability: 1}, Vote: Explorer},
			{Text: "Dependable", Delta: Traits{Resilience: 1}, Vote: Guardian},
			{Text: "Thoughtful", Delta: Traits{Adaptability: -1}, Vote: Dreamer},
			{Text: "Determined", Delta: Traits{EnergyLevel: 1, Resilience: 1}, Vote: Challenger},
		},
	},
	{
		Prompt: "A long-term goal feels far away. You...",
		Options: [4]Option{
			{Text: "Find a fun detour", Delta: Traits{Adaptability: 1}, Vote: Explorer},
			{Text: "Stick to small daily steps", Delta: Traits{Resilience: 2}, Vote: Guardian},
			{Text: "Picture the finish line", Delta: Traits{EnergyLevel: -1, Adaptability: 1}, Vote: Dreamer},
			{Text: "Double the effort", Delta: Traits{EnergyLevel: 2, Resilience: -1}, Vote: Challenger},
		},
	},
}

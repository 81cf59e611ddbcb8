package trait

// Option is one of the two forced choices a question offers.
type Option struct {
	Text string
	Tag  Answer
}

// Question is a single forced-choice quiz item targeting one axis.
type Question struct {
	Text    string
	Axis    Axis
	Options [2]Option
}

// DefaultQuestions returns the built-in 10-question bank.
// The axis distribution is fixed at design time: 3×E/I, 3×T/F,
// 2×J/P, 2×S/N, in the order EI, TF, JP, SN, EI, TF, JP, SN, EI, TF.
func DefaultQuestions() []Question {
	return []Question{
		{
			Text: "At a party, you prefer:",
			Axis: AxisMind,
			Options: [2]Option{
				{Text: "Talking with many different people", Tag: AnswerE},
				{Text: "Deep conversations with a few people", Tag: AnswerI},
			},
		},
		{
			Text: "When making decisions:",
			Axis: AxisNature,
			Options: [2]Option{
				{Text: "You follow logic and analysis", Tag: AnswerT},
				{Text: "You consider how it will affect others", Tag: AnswerF},
			},
		},
		{
			Text: "You prefer:",
			Axis: AxisTactics,
			Options: [2]Option{
				{Text: "Having clear, defined plans", Tag: AnswerJ},
				{Text: "Being spontaneous and adapting as you go", Tag: AnswerP},
			},
		},
		{
			Text: "You focus more on:",
			Axis: AxisEnergy,
			Options: [2]Option{
				{Text: "The big picture and possibilities", Tag: AnswerN},
				{Text: "Details and present reality", Tag: AnswerS},
			},
		},
		{
			Text: "At work or school:",
			Axis: AxisMind,
			Options: [2]Option{
				{Text: "You prefer collaborating and sharing ideas", Tag: AnswerE},
				{Text: "You prefer working alone and in silence", Tag: AnswerI},
			},
		},
		{
			Text: "When there is a conflict:",
			Axis: AxisNature,
			Options: [2]Option{
				{Text: "You look for the objectively fairest solution", Tag: AnswerT},
				{Text: "You look for harmony and understanding emotions", Tag: AnswerF},
			},
		},
		{
			Text: "Your workspace is:",
			Axis: AxisTactics,
			Options: [2]Option{
				{Text: "Tidy and organized", Tag: AnswerJ},
				{Text: "Flexible and a bit chaotic", Tag: AnswerP},
			},
		},
		{
			Text: "You are more interested in:",
			Axis: AxisEnergy,
			Options: [2]Option{
				{Text: "Abstract theories and new concepts", Tag: AnswerN},
				{Text: "Practical, proven experience", Tag: AnswerS},
			},
		},
		{
			Text: "You recharge energy by:",
			Axis: AxisMind,
			Options: [2]Option{
				{Text: "Being out with friends and socializing", Tag: AnswerE},
				{Text: "Being alone in your own space", Tag: AnswerI},
			},
		},
		{
			Text: "When solving problems:",
			Axis: AxisNature,
			Options: [2]Option{
				{Text: "You weigh pros and cons rationally", Tag: AnswerT},
				{Text: "You trust your intuition and values", Tag: AnswerF},
			},
		},
	}
}

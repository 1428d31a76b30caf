package constant

const (
	// Trigger keywords, matched by exact string equality after trimming.
	TriggerStartQuestion   = "質問する"
	TriggerAnotherQuestion = "別の質問をする"
	TriggerEndQuestion     = "終了する"

	// Fixed replies.
	AskQuestionReply = "質問内容を入力してください。"
	FarewellReply    = "ご利用ありがとうございました。また質問があるときは「質問する」と送信してください。"

	// User-safe text substituted whenever answering fails.
	AnswerUnavailableReply = "申し訳ございません。現在、回答できません。時間をおいて再度お試しください。"
)

const ClassifyQuestionSystemPromptV1 = `あなたはユーザーの質問のカテゴリを判定するアシスタントです。
以下のユーザーの質問が、「イベント」に関するものか、「スタッフルール」に関するものか、「給与・勤務」に関するものか、一つだけ選択してください。
必ず「イベント」「スタッフルール」「給与・勤務」のいずれかのみで答えてください。
それ以外の余分な文章は出力しないでください。`

package bot

import "github.com/ChiChi812/course-recommendation-bot/internal/telegram"

// Callback data for the /setprefs wizard.
const (
	cbLevelPrefix = "level_"
	cbCertPrefix  = "cert_"
	cbConfirmSave = "confirm_save"
	cbBackToLevel = "back_to_level"
	cbBackToCert  = "back_to_cert"
	cbBackHome    = "back_home"
)

func levelMenu() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{
				{Text: "🟢 Beginner", CallbackData: cbLevelPrefix + "Beginner"},
				{Text: "🟡 Intermediate", CallbackData: cbLevelPrefix + "Intermediate"},
				{Text: "🔴 Advanced", CallbackData: cbLevelPrefix + "Advanced"},
			},
			{
				{Text: "❌ Cancel", CallbackData: cbBackHome},
			},
		},
	}
}

func certMenu() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{
				{Text: "🎓 Course", CallbackData: cbCertPrefix + "COURSE"},
				{Text: "📚 Specialization", CallbackData: cbCertPrefix + "SPECIALIZATION"},
				{Text: "💼 Professional", CallbackData: cbCertPrefix + "PROFESSIONAL"},
			},
			{
				{Text: "⬅️ Back to Level", CallbackData: cbBackToLevel},
				{Text: "❌ Cancel", CallbackData: cbBackHome},
			},
		},
	}
}

func confirmMenu() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{
				{Text: "✅ Save & Close", CallbackData: cbConfirmSave},
			},
			{
				{Text: "⬅️ Back to Certificate", CallbackData: cbBackToCert},
				{Text: "⬅️ Back to Level", CallbackData: cbBackToLevel},
			},
			{
				{Text: "❌ Cancel", CallbackData: cbBackHome},
			},
		},
	}
}

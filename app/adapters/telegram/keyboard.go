package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// MainKeyboard is the persistent command keyboard attached to every reply.
func MainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/upcoming"),
			tgbotapi.NewKeyboardButton("/finished"),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("/prediction")),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("/mypredictions")),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton("/allpredictions")),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

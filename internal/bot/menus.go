package bot

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/poetbot/internal/action"
	"github.com/m3rciful/poetbot/internal/telegram/keyboard"
)

func mainMenu(isAdmin bool) *tele.ReplyMarkup {
	rows := [][]keyboard.InlineBtn{
		{{Text: "📝 Подать заявку на вечер", Unique: "apply"}},
		{{Text: "🎭 Об организаторе", Unique: "about"}},
		{{Text: "📋 Правила", Unique: "rules"}},
	}
	if isAdmin {
		rows = append(rows, []keyboard.InlineBtn{{Text: "⚙️ Меню Организатора", Unique: "admin_menu"}})
	}
	return keyboard.InlineButtonsRows(rows...)
}

func backToMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🔙 Вернуться в меню", Unique: "main_menu"},
	})
}

func adminMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "📨 Заявки в первый блок", Unique: "admin_pending_applications"},
		{Text: "📄 Стихи первого блока", Unique: "admin_approved_poems"},
		{Text: "👥 Список второго блока", Unique: "admin_second_block"},
		{Text: "🗑️ Удалить все заявки", Unique: "admin_delete_all"},
		{Text: "📋 Правила", Unique: "admin_rules"},
		{Text: "🎭 Об организаторе", Unique: "admin_about"},
		{Text: "🚫 Черный список", Unique: "admin_blacklist"},
		{Text: "📢 Сделать рассылку", Unique: "admin_broadcast"},
		{Text: "🔙 В главное меню", Unique: "main_menu"},
	})
}

func blacklistMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "➕ Добавить в ЧС", Unique: "blacklist_add"},
		{Text: "➖ Удалить из ЧС", Unique: "blacklist_remove"},
		{Text: "👁️ Просмотр ЧС", Unique: "blacklist_view"},
		{Text: "🔙 Назад", Unique: "admin_menu"},
	})
}

func secondBlockKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "✅ Да", Unique: "second_block_yes"},
			{Text: "❌ Нет", Unique: "second_block_no"},
		},
		[]keyboard.InlineBtn{
			{Text: "🔙 Отмена", Unique: "cancel_application"},
		},
	)
}

func cancelApplicationKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🔙 Отмена", Unique: "cancel_application"},
	})
}

func moderationKeyboard(applicationID int64, index, total int) *tele.ReplyMarkup {
	rows := [][]keyboard.InlineBtn{
		{
			{Text: "✅ Принять", Unique: action.ApproveToken(applicationID)},
			{Text: "❌ Отклонить", Unique: action.RejectToken(applicationID)},
		},
	}

	var nav []keyboard.InlineBtn
	if index > 0 {
		nav = append(nav, keyboard.InlineBtn{Text: "◀️ Назад", Unique: action.NavToken(index - 1)})
	}
	nav = append(nav, keyboard.InlineBtn{Text: fmt.Sprintf("%d/%d", index+1, total), Unique: "noop"})
	if index < total-1 {
		nav = append(nav, keyboard.InlineBtn{Text: "Вперед ▶️", Unique: action.NavToken(index + 1)})
	}
	rows = append(rows, nav)

	rows = append(rows, []keyboard.InlineBtn{{Text: "🔙 Назад", Unique: "admin_menu"}})
	return keyboard.InlineButtonsRows(rows...)
}

func deleteAllConfirmKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "✅ Да, удалить все", Unique: "confirm_delete_all"},
		{Text: "❌ Отмена", Unique: "cancel_delete_all"},
	})
}

func blacklistPageKeyboard(page, totalPages int) *tele.ReplyMarkup {
	var nav []keyboard.InlineBtn
	if page > 0 {
		nav = append(nav, keyboard.InlineBtn{Text: "◀️ Назад", Unique: action.BlacklistPageToken(page - 1)})
	}
	nav = append(nav, keyboard.InlineBtn{Text: fmt.Sprintf("%d/%d", page+1, totalPages), Unique: "noop"})
	if page < totalPages-1 {
		nav = append(nav, keyboard.InlineBtn{Text: "Вперед ▶️", Unique: action.BlacklistPageToken(page + 1)})
	}
	return keyboard.InlineButtonsRows(
		nav,
		[]keyboard.InlineBtn{{Text: "🔙 Назад", Unique: "admin_blacklist"}},
	)
}

func backToBlacklistMenu() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🔙 Назад", Unique: "admin_blacklist"},
	})
}

func cancelEditKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "❌ Отмена", Unique: "cancel_edit"},
	})
}

func queueLinkKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "📨 Перейти к заявкам", Unique: "admin_pending_applications"},
	})
}

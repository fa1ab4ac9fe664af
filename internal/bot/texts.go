package bot

// User-facing texts. The bot speaks Russian; keep every string here so the
// handlers stay readable.
const (
	msgBlacklisted = "⛔ Доступ к боту ограничен."
	msgNoAccess    = "⛔ У вас нет прав доступа."
	msgUseMenu     = "ℹ️ Используйте меню для взаимодействия с ботом."

	msgMainMenu  = "🎭 Главное меню поэтического вечера:"
	msgAdminMenu = "⚙️ Меню организатора:"

	msgApplicationStarted = "📝 Начата подача заявки..."
	msgAskPoem            = "📝 Подача заявки на поэтический вечер:\n\n" +
		"Пожалуйста, введите текст вашего стихотворения:"
	msgPoemReceived = "✅ Стихотворение получено!\n\n" +
		"Хотите ли вы также выступить во втором блоке вечера?"
	msgApplicationCancelled = "❌ Подача заявки отменена."
	msgApplicationError     = "❌ Ошибка при обработке заявки."

	msgApproved = "🎉 Ваша заявка одобрена!\n\nМы ждем вас на поэтическом вечере!"
	msgRejected = "❌ Ваша заявка отклонена.\n\nПо всем вопросам обращайтесь к организаторам."

	msgNoPending     = "📭 Нет заявок на рассмотрение."
	msgNotFound      = "❌ Заявка не найдена."
	msgAllProcessed  = "✅ Все заявки обработаны!"
	msgApproveToast  = "✅ Заявка одобрена!"
	msgRejectToast   = "❌ Заявка отклонена"
	msgExportSent    = "✅ Файл отправлен!"
	msgNoApproved    = "❌ Нет принятых заявок для экспорта"
	msgNoSecondBlock = "❌ Нет выступающих во втором блоке"

	msgBlacklistAddPrompt = "➕ Добавление в черный список\n\n" +
		"Отправьте ID пользователя для добавления:"
	msgBlacklistRemovePrompt = "➖ Удаление из черного списка\n\n" +
		"Отправьте ID пользователя для удаления:"
	msgBlacklistBadID       = "❌ Неверный формат ID. Отправьте числовой ID:"
	msgBlacklistUserMissing = "❌ Пользователь с таким ID не найден. Отправьте числовой ID:"
	msgBlacklistEmpty       = "📝 Черный список пуст"

	msgBroadcastStarted = "🔄 Начинаем рассылку..."

	msgRulesSaved     = "✅ Правила успешно обновлены!"
	msgAboutSaved     = "✅ Информация об организаторе успешно обновлена!"
	msgEditCancelled  = "❌ Редактирование отменено."
	msgContentMissing = "❌ Текст пока не заполнен."

	msgInternalError = "❌ Произошла ошибка. Попробуйте позже."
	msgUnknownAction = "❌ Неизвестная команда"
)

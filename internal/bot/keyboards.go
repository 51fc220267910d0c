package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

func categoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔥 کاندوم", "cat_condom"),
			tgbotapi.NewInlineKeyboardButtonData("🧴 کرم", "cat_cream"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👐 بالم دست", "cat_handbalm"),
			tgbotapi.NewInlineKeyboardButtonData("💄 آرایشی", "cat_cosmetic"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧪 سرم صورت", "cat_serum"),
			tgbotapi.NewInlineKeyboardButtonData("🦷 خمیر دندان", "cat_toothpaste"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧼 پاک‌کننده", "cat_cleanser"),
		),
	)
}

func creamSubmenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌼 کرم دست", "sub_cream_hand"),
			tgbotapi.NewInlineKeyboardButtonData("🦶 کرم پا", "sub_cream_foot"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧴 لوسیون بدن", "sub_cream_body"),
		),
	)
}

func cleanserSubmenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧻 دستمال مرطوب", "sub_cleanser_wetwipe"),
			tgbotapi.NewInlineKeyboardButtonData("💧 میسلار واتر", "sub_cleanser_micellar"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧼 فیس واش", "sub_cleanser_facewash"),
		),
	)
}

func platformKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📸 اینستاگرام", "plat_instagram"),
			tgbotapi.NewInlineKeyboardButtonData("🎵 تیک‌تاک", "plat_tiktok"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ یوتیوب", "plat_youtube"),
		),
	)
}

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇮🇷 فارسی", "lang_fa"),
			tgbotapi.NewInlineKeyboardButtonData("🇬🇧 انگلیسی", "lang_en"),
		),
	)
}

func viewKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔵 +100K", "view_100k"),
			tgbotapi.NewInlineKeyboardButtonData("🟣 +300K", "view_300k"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🟠 +500K", "view_500k"),
			tgbotapi.NewInlineKeyboardButtonData("🔴 +1M", "view_1m"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚫️ +5M", "view_5m"),
		),
	)
}

func continueKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("بفرست", "next_batch"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("نه ممنون", "stop"),
		),
	)
}

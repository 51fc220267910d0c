package bot

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"viralscout/internal/search"
)

// User-facing copy. The bot speaks Persian; metric labels inside post
// cards stay English to match the dashboard.
var texts = struct {
	askCategory    string
	askPlatform    string
	askLanguage    string
	chooseCream    string
	chooseCleanser string
	askMinViews    string
	noPosts        string
	searching      string
	resultsReady   string
	done           string
	farewell       string
}{
	askCategory:    "🌸 لطفاً دسته‌بندی مورد نظر را انتخاب کن",
	askPlatform:    "📱 پلتفرم مورد نظر را انتخاب کن",
	askLanguage:    "🎯 زبان دلخواهت رو انتخاب کن",
	chooseCream:    "🌿 لطفاً نوع کرم مورد نظر را انتخاب کن",
	chooseCleanser: "✨ کدام پاک‌کننده را مدنظر داری؟",
	askMinViews:    "👀 حداقل تعداد بازدید رو انتخاب کن",
	noPosts:        "هیچ ویدیوی وایرالی با این شرایط پیدا نشد. یه کلمه یا بازدید حداقلی دیگه امتحان کن ✨",
	searching:      "⏳ در حال جستجو… 0%",
	resultsReady:   "✔ نتایج آماده شد!",
	done:           "تمام شد! ✔️",
	farewell:       "%s، امیدوارم چندتا ایدهٔ خوب گرفته باشی.\nهر وقت خواستی دوباره سراغ وایرال‌ها بری، من آماده‌ام. ⚡️",
}

// keywordMap resolves callback categories to the Persian search keyword.
var keywordMap = map[string]string{
	"cat_condom":            "کاندوم",
	"cat_cream":             "کرم",
	"sub_cream_hand":        "کرم دست",
	"sub_cream_foot":        "کرم پا",
	"sub_cream_body":        "کرم بدن",
	"cat_cleanser":          "پاک کننده آرایشی",
	"sub_cleanser_wetwipe":  "دستمال مرطوب",
	"sub_cleanser_micellar": "میسلار",
	"sub_cleanser_facewash": "فیس واش",
	"cat_serum":             "سرم صورت",
	"cat_toothpaste":        "خمیر دندان",
	"cat_cosmetic":          "لوازم آرایشی",
	"cat_handbalm":          "بالم دست",
}

// viewMap resolves the minimum-view buttons to their thresholds.
var viewMap = map[string]int64{
	"view_100k": 100_000,
	"view_300k": 300_000,
	"view_500k": 500_000,
	"view_1m":   1_000_000,
	"view_5m":   5_000_000,
}

// progressStage renders a reporter milestone into transcript text.
func progressStage(stage string) string {
	if stage == "90%" {
		return "⏳ آماده‌سازی نتایج… " + stage
	}
	return "⏳ در حال جستجو… " + stage
}

var enNum = message.NewPrinter(language.English)

// formatPost renders one post card as Telegram HTML.
func formatPost(post search.Post, index int) string {
	return strings.Join([]string{
		fmt.Sprintf("🔥 پست وایرال شماره %d", index),
		"",
		fmt.Sprintf(`<a href="%s">🔗 Open Post</a>`, post.URL),
		"────────────────────",
		"",
		enNum.Sprintf("👁 Views: %d", post.Views),
		enNum.Sprintf("❤️ Likes: %d", post.Likes),
		enNum.Sprintf("💬 Comments: %d", post.Comments),
		"",
		"────────────────────",
		"📝 <b>Caption:</b>",
		html.EscapeString(post.Caption),
	}, "\n")
}

// continuePrompt asks whether to keep paging.
func continuePrompt(sent, total int) string {
	return enNum.Sprintf("📦 تا الان %d تا از %d پست رو برات فرستادم.\nادامه بدم؟ 🔎", sent, total)
}

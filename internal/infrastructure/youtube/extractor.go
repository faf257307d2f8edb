package youtube

import "regexp"

// Принимаем youtube.com, youtu.be, youtube-nocookie.com и наш алиас learnfromvideo.com.
// Паттерн заякорен в начале строки: мусор перед ссылкой = невалидный ввод.
var videoIDRegex = regexp.MustCompile(
	`^(?:https?://)?(?:www\.)?(?:youtube|youtu|youtube-nocookie|learnfromvideo)\.(?:com|be)/(?:watch\?v=|embed/|v/|.+\?v=)?([^&=%?]{11})`,
)

// ExtractVideoID достает 11-символьный ID видео из ссылки.
// Возвращает пустую строку, если ссылка не распознана.
func ExtractVideoID(url string) string {
	m := videoIDRegex.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

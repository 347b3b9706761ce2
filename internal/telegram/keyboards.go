package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	btnCommands = "Список команд"
	btnLocation = "Отправить геолокацию"
	btnContacts = "Контакты"
	btnWeather  = "Узнать погоду"
	btnBack     = "Назад"

	cbOneDay     = "get_weather_one"
	cbThreeDays  = "get_weather"
	cbSummary    = "summary_search"
	cbStation    = "meteostation_data"
	cbMeteograms = "gmc_forecast_more"
)

// Клавиатура главного меню
var mainMenu = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCommands)),
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnLocation)),
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnContacts)),
)

// Клавиатура отправки геолокации
var shareLocationMenu = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonLocation(btnWeather)),
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)),
)

// Клавиатура опций
var inlineMenu = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Прогноз погоды на 1 день", cbOneDay)),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Прогноз погоды на 3 дня", cbThreeDays)),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Саммари Погода и Климат", cbSummary)),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Данные с метеостанций", cbStation)),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Метеограммы от ГМЦ", cbMeteograms)),
)

func init() {
	mainMenu.ResizeKeyboard = true
	shareLocationMenu.ResizeKeyboard = true
}

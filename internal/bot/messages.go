package bot

import (
	"contratobot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Fixed user-facing texts. The bot speaks Portuguese only.
const (
	MsgWelcome = "👋 Olá! Sou um bot que analisa dados dos contratos. " +
		"Antes de continuar, por favor, me diga seu nome:"
	MsgAuthorized   = "✅ Acesso autorizado! Como posso te ajudar?"
	MsgUnauthorized = "❌ Usuário não autorizado. Você não pode interagir com o bot."

	BtnContractTerm = "📅 Vigência do contrato 71"
	BtnClearHistory = "🗑 Limpar histórico"

	MsgContractTerm = "📌 O contrato 71 tem vigência até 29/04/2025."

	MsgClearing    = "🗑 Limpando histórico de conversa..."
	MsgCleared     = "✅ Histórico limpo com sucesso!"
	MsgClearFailed = "⚠️ Erro ao limpar histórico. Tente novamente mais tarde."

	MsgSheetAuth = "⚠️ Erro ao acessar a planilha: acesso não autorizado. " +
		"Avise o administrador."
	MsgSheetRateLimited = "⚠️ A planilha está indisponível por excesso de consultas. " +
		"Tente novamente em instantes."
	MsgSheetNotFound = "⚠️ Planilha não encontrada. Avise o administrador."
	MsgSheetNetwork  = "⚠️ Erro ao acessar a planilha. Tente novamente em instantes."
	MsgSheetEmpty    = "Nenhum dado encontrado."

	MsgAnswerFailed = "⚠️ Não consegui gerar uma resposta agora. " +
		"Tente novamente em instantes."

	MsgSlowDown = "⏳ Muitas mensagens seguidas. Aguarde um instante."
)

// MenuKeyboard builds the persistent two-button menu shown to authorized
// users.
func MenuKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{BtnContractTerm, BtnClearHistory})
}

package messaging

import "github.com/KirkDiggler/coupd/internal/models"

const (
	// BaseLocale is the locale every key must be defined in
	BaseLocale = "en-US"

	influenceKeyPrefix = "influence."
)

// catalogs holds every message by locale. Arguments are positional:
//
//	game.joined            name, player count
//	game.winner            name
//	card.removed           name
//	card.replaced          name
//	player.eliminated      name
//	player.left            name
//	foreign_aid.requested  name, cards dealt
//	foreign_aid.finished   name
//	status.player          name, open, hidden, foreign aid pending
//	status.deck            cards in deck, total cards
//	leaderboard.entry      rank, name, wins, played
//	history.entry          match ID, end time, winner
//	history.entry_no_winner match ID, end time
//	match.header           match ID
//	match.players          player names
//	match.period           start time, end time
var catalogs = map[string]map[Key]string{
	"en-US": {
		KeyGameCreated:         "A new game is ready! Use `/coup join` to take a seat and `/coup start` once everybody is in.",
		KeyGameJoined:          "%s joined the game. Players: %d",
		KeyGameStarted:         "Game started! Check your direct messages for your cards.",
		KeyGameOver:            "Game over.",
		KeyGameWinner:          "%s is the winner!",
		KeyGameNoWinner:        "Nobody won this one.",
		KeyYouWon:              "You won the game!",
		KeyCardRemoved:         "A card from %s was discarded.",
		KeyCardReplaced:        "%s drew a new card.",
		KeyCardHidden:          "?",
		KeyPlayerEliminated:    "%s has no influence left and is out of the game.",
		KeyPlayerLeft:          "%s left the game.",
		KeyForeignAidRequested: "%s asked for foreign aid and drew %d cards.",
		KeyForeignAidFinished:  "%s finished the foreign aid.",
		KeyStatusHeader:        "Players' hands",
		KeyStatusPlayer:        "%s: %d open, %d hidden, %d foreign aid to discard",
		KeyStatusDeck:          "Deck: %d of %d cards",
		KeyStatusForming:       "Waiting for players to join.",
		KeyLeaderboardHeader:   "Leaderboard",
		KeyLeaderboardEntry:    "%d. %s: %d wins in %d games",
		KeyLeaderboardEmpty:    "No finished games yet.",
		KeyHistoryHeader:       "Recent games",
		KeyHistoryEntry:        "`%s` %s, won by %s",
		KeyHistoryEntryNoWin:   "`%s` %s, nobody won",
		KeyMatchHeader:         "Game %s",
		KeyMatchPlayers:        "Players: %s",
		KeyMatchPeriod:         "Played from %s to %s",
		KeyMatchForced:         "Ended with `/coup end`.",
		KeyButtonHide:          "Hide",
		KeyButtonShow:          "Show",
		KeyButtonRemove:        "Remove",
		KeyRules: "**Influences and their actions**\n" +
			"**Everyone**: take 1 coin, or 2 coins through foreign aid. Spend 7 coins to launch a coup and kill an influence of your choice. With 10 or more coins the coup is mandatory.\n" +
			"**Duke**: take 3 coins. Blocks foreign aid.\n" +
			"**Captain**: steal 2 coins from another player. Blocks other captains.\n" +
			"**Ambassador**: draw as many cards as you hold, then discard until you are back to your hand size. Blocks captains.\n" +
			"**Assassin**: pay 3 coins to kill an influence of your choice.\n" +
			"**Duchess**: blocks assassins.",
		KeyHelp: "`/coup new` opens a game in this channel\n" +
			"`/coup join` takes a seat\n" +
			"`/coup start` deals the cards\n" +
			"`/coup aid` draws foreign aid cards\n" +
			"`/coup status` shows everybody's hand size\n" +
			"`/coup leave` quits the game\n" +
			"`/coup end` ends the game for everyone\n" +
			"`/coup leaderboard` shows the standings\n" +
			"`/coup history` lists the latest games\n" +
			"`/coup match` shows one finished game\n" +
			"`/coup rules` lists the influences",
		KeyHelpConsole: "join <id> <name>   take a seat, opening a game if needed\n" +
			"start              deal the cards\n" +
			"hand <id>          show a player's cards\n" +
			"hide <id> <n>      hide card n\n" +
			"show <id> <n>      show card n\n" +
			"remove <id> <n>    discard card n\n" +
			"aid <id>           draw foreign aid cards\n" +
			"leave <id>         quit the game\n" +
			"status             show everybody's hand size\n" +
			"end                end the game\n" +
			"leaderboard        show the standings\n" +
			"history            list the latest games\n" +
			"match <id>         show one finished game\n" +
			"rules              list the influences\n" +
			"quit               close the table",
		KeyColumnPlayer:     "Player",
		KeyColumnOpen:       "Open",
		KeyColumnHidden:     "Hidden",
		KeyColumnForeignAid: "Foreign aid",
		KeyColumnInfluence:  "Influence",

		KeyErrUnsupportedPlayerCount: "A game needs between 1 and 10 players.",
		KeyErrGameAlreadyStarted:     "The game already started. Finish it or `/coup end` it first.",
		KeyErrGameConcluded:          "That game is already over.",
		KeyErrGameNotStarted:         "The game hasn't started yet. Use `/coup start` first.",
		KeyErrPlayerNotInGame:        "You're not in a game.",
		KeyErrPlayerAlreadyInGame:    "You're already in a game.",
		KeyErrCardNotFound:           "That card is not in your hand anymore.",
		KeyErrForeignAidInProgress:   "You need to discard the cards from your previous foreign aid first.",
		KeyErrEmptyDeck:              "There are not enough cards left in the deck.",
		KeyErrGameNotFound:           "There's no game here. Create one with `/coup new`.",
		KeyErrGameAlreadyExists:      "There's already a game in this channel. Finish it or `/coup end` it first.",
		KeyErrHistoryUnavailable:     "Game records are not available on this server.",
		KeyErrMatchNotFound:          "There's no such game in this channel.",
		KeyErrGroupOnly:              "Games can only be played in a server channel.",
		KeyErrUnknown:                "Something went wrong, try again.",

		influenceKey(models.InfluenceDuke):       "Duke",
		influenceKey(models.InfluenceCaptain):    "Captain",
		influenceKey(models.InfluenceAmbassador): "Ambassador",
		influenceKey(models.InfluenceAssassin):   "Assassin",
		influenceKey(models.InfluenceDuchess):    "Duchess",
	},
	"pt-BR": {
		KeyGameCreated:         "Um novo jogo está pronto! Use `/coup join` para entrar e `/coup start` quando todos estiverem dentro.",
		KeyGameJoined:          "%s entrou no jogo. Jogadores: %d",
		KeyGameStarted:         "O jogo começou! Confira suas cartas nas mensagens diretas.",
		KeyGameOver:            "Fim de jogo.",
		KeyGameWinner:          "%s venceu!",
		KeyGameNoWinner:        "Ninguém venceu desta vez.",
		KeyYouWon:              "Você ganhou o jogo!",
		KeyCardRemoved:         "Uma carta de %s foi descartada.",
		KeyCardReplaced:        "%s comprou uma nova carta.",
		KeyCardHidden:          "?",
		KeyPlayerEliminated:    "%s não tem mais influências e saiu do jogo.",
		KeyPlayerLeft:          "%s saiu do jogo.",
		KeyForeignAidRequested: "%s pediu ajuda externa e comprou %d cartas.",
		KeyForeignAidFinished:  "%s terminou a ajuda externa.",
		KeyStatusHeader:        "Mãos dos jogadores",
		KeyStatusPlayer:        "%s: %d abertas, %d escondidas, %d de ajuda externa para descartar",
		KeyStatusDeck:          "Baralho: %d de %d cartas",
		KeyStatusForming:       "Aguardando jogadores.",
		KeyLeaderboardHeader:   "Classificação",
		KeyLeaderboardEntry:    "%d. %s: %d vitórias em %d jogos",
		KeyLeaderboardEmpty:    "Nenhum jogo terminado ainda.",
		KeyHistoryHeader:       "Jogos recentes",
		KeyHistoryEntry:        "`%s` %s, vencido por %s",
		KeyHistoryEntryNoWin:   "`%s` %s, ninguém venceu",
		KeyMatchHeader:         "Jogo %s",
		KeyMatchPlayers:        "Jogadores: %s",
		KeyMatchPeriod:         "Jogado de %s a %s",
		KeyMatchForced:         "Encerrado com `/coup end`.",
		KeyButtonHide:          "Esconder",
		KeyButtonShow:          "Mostrar",
		KeyButtonRemove:        "Remover",
		KeyRules: "**Influências e suas ações**\n" +
			"**Todos**: pega 1 moeda, ou 2 moedas com ajuda externa. Gasta 7 moedas para dar um golpe de estado e matar uma influência à sua escolha. Com 10 ou mais moedas o golpe é obrigatório.\n" +
			"**Duque**: pega 3 moedas. Bloqueia a ajuda externa.\n" +
			"**Capitão**: rouba 2 moedas de um jogador. Bloqueia outro capitão.\n" +
			"**Embaixador**: compra o número de influências que possui e descarta até voltar ao número que tinha antes. Bloqueia capitão.\n" +
			"**Assassino**: mata uma influência à sua escolha por 3 moedas.\n" +
			"**Duquesa**: bloqueia o assassino.",
		KeyHelp: "`/coup new` cria um jogo neste canal\n" +
			"`/coup join` entra no jogo\n" +
			"`/coup start` distribui as cartas\n" +
			"`/coup aid` pede ajuda externa\n" +
			"`/coup status` mostra quantas cartas cada um tem\n" +
			"`/coup leave` sai do jogo\n" +
			"`/coup end` encerra o jogo para todos\n" +
			"`/coup leaderboard` mostra a classificação\n" +
			"`/coup history` lista os últimos jogos\n" +
			"`/coup match` mostra um jogo terminado\n" +
			"`/coup rules` lista as influências",

		KeyHelpConsole: "join <id> <nome>   entra no jogo, criando um se preciso\n" +
			"start              distribui as cartas\n" +
			"hand <id>          mostra as cartas de um jogador\n" +
			"hide <id> <n>      esconde a carta n\n" +
			"show <id> <n>      mostra a carta n\n" +
			"remove <id> <n>    descarta a carta n\n" +
			"aid <id>           pede ajuda externa\n" +
			"leave <id>         sai do jogo\n" +
			"status             mostra quantas cartas cada um tem\n" +
			"end                encerra o jogo\n" +
			"leaderboard        mostra a classificação\n" +
			"history            lista os últimos jogos\n" +
			"match <id>         mostra um jogo terminado\n" +
			"rules              lista as influências\n" +
			"quit               fecha a mesa",
		KeyColumnPlayer:     "Jogador",
		KeyColumnOpen:       "Abertas",
		KeyColumnHidden:     "Escondidas",
		KeyColumnForeignAid: "Ajuda externa",
		KeyColumnInfluence:  "Influência",

		KeyErrUnsupportedPlayerCount: "Um jogo precisa ter entre 1 e 10 jogadores.",
		KeyErrGameAlreadyStarted:     "O jogo já começou. Termine-o ou use `/coup end` antes.",
		KeyErrGameConcluded:          "Esse jogo já terminou.",
		KeyErrGameNotStarted:         "O jogo ainda não começou. Use `/coup start` antes.",
		KeyErrPlayerNotInGame:        "Você não está em um jogo.",
		KeyErrPlayerAlreadyInGame:    "Você já está em um jogo.",
		KeyErrCardNotFound:           "Essa carta não está mais na sua mão.",
		KeyErrForeignAidInProgress:   "Você precisa descartar as cartas da ajuda externa anterior primeiro.",
		KeyErrEmptyDeck:              "Não há cartas suficientes no baralho.",
		KeyErrGameNotFound:           "Não há jogo aqui. Crie um com `/coup new`.",
		KeyErrGameAlreadyExists:      "Já existe um jogo neste canal. Termine-o ou use `/coup end` antes.",
		KeyErrHistoryUnavailable:     "O histórico de jogos não está disponível neste servidor.",
		KeyErrMatchNotFound:          "Não existe esse jogo neste canal.",
		KeyErrGroupOnly:              "Jogos só podem ser jogados em um canal de servidor.",
		KeyErrUnknown:                "Algo deu errado, tente novamente.",

		influenceKey(models.InfluenceDuke):       "Duque",
		influenceKey(models.InfluenceCaptain):    "Capitão",
		influenceKey(models.InfluenceAmbassador): "Embaixador",
		influenceKey(models.InfluenceAssassin):   "Assassino",
		influenceKey(models.InfluenceDuchess):    "Duquesa",
	},
}

func influenceKey(influence models.Influence) Key {
	return Key(influenceKeyPrefix + string(influence))
}

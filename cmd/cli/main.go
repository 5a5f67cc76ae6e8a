package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sefariabot/config"
	"sefariabot/internal/calendar"
	"sefariabot/internal/clients/hebcal"
	"sefariabot/internal/clients/openrouter"
	"sefariabot/internal/clients/sefaria"
	"sefariabot/internal/holiday"
	"sefariabot/internal/router"
	"sefariabot/internal/service"
)

var exitWords = map[string]bool{"выход": true, "exit": true, "quit": true, "q": true}

func main() {
	// logs would interleave with the prompt
	logrus.SetLevel(logrus.ErrorLevel)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		fmt.Fprintln(os.Stderr, "Пожалуйста, добавьте ваш API ключ в файл .env:")
		fmt.Fprintln(os.Stderr, "OPENROUTER_API_KEY=your_openrouter_api_key_here")
		os.Exit(1)
	}

	hebcalClient := hebcal.NewClient(cfg.HebcalLang)
	sefariaClient := sefaria.NewClient()
	llm := openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)

	chat := service.NewChatService(
		router.New(llm),
		calendar.NewBridge(hebcalClient),
		holiday.NewResolver(hebcalClient),
		llm,
		sefariaClient,
		hebcalClient,
		func() time.Time { return time.Now().In(cfg.Timezone) },
	)

	divider := strings.Repeat("=", 50)
	fmt.Println(divider)
	fmt.Println("Sefaria ChatBot (Консольная версия)")
	fmt.Println("Введите 'выход' или 'exit' для завершения.")
	fmt.Println(divider)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nВаш вопрос: ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())

		if exitWords[strings.ToLower(query)] {
			fmt.Println("До свидания!")
			break
		}
		if query == "" {
			continue
		}

		fmt.Println("\nОбработка запроса...")

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		answer := chat.HandleQuery(ctx, query)
		cancel()

		fmt.Println("\nОтвет:")
		fmt.Println(strings.Repeat("-", 50))
		fmt.Println(answer)
		fmt.Println(strings.Repeat("-", 50))
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"interpreter-booking/internal/config"
	pg "interpreter-booking/internal/infra/db/postgres"
)

func main() {
	// ---- Config ----
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Connect Postgres
	pool, err := pg.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// If languages already exist, do nothing
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM languages;`).Scan(&count); err != nil {
		log.Fatalf("count languages: %v", err)
	}
	if count > 0 {
		fmt.Printf("%d languages already present. No changes.\n", count)
		return
	}

	// Seed languages plus a few sample accounts for testing the booking flow
	languages := []string{"Arabiska", "Somaliska", "Tigrinja", "Dari", "Engelska", "Franska"}
	langIDs := make([]string, len(languages))
	for i, name := range languages {
		langIDs[i] = uuid.NewString()
		if _, err := pool.Exec(ctx,
			`INSERT INTO languages (id, name, active) VALUES ($1, $2, true);`,
			langIDs[i], name,
		); err != nil {
			log.Fatalf("seed language %q: %v", name, err)
		}
		fmt.Printf("seeded: %s (id=%s)\n", name, langIDs[i])
	}

	now := time.Now()
	accounts := []struct {
		Name  string
		Email string
		Role  string
	}{
		{"Admin", "admin@example.test", "admin"},
		{"Test Customer", "customer@example.test", "customer"},
		{"Test Translator", "translator@example.test", "translator"},
	}
	for _, a := range accounts {
		id := uuid.NewString()
		if _, err := pool.Exec(ctx, `
INSERT INTO users (id, name, email, mobile, role, enabled, created_at)
VALUES ($1, $2, $3, '', $4, true, $5);`,
			id, a.Name, a.Email, a.Role, now,
		); err != nil {
			log.Fatalf("seed user %q: %v", a.Email, err)
		}
		switch a.Role {
		case "customer":
			if _, err := pool.Exec(ctx, `
INSERT INTO user_meta (user_id, translator_type, translator_level, gender, consumer_type,
                       city, address, instructions,
                       not_get_notification, not_get_nighttime, not_get_emergency)
VALUES ($1, '', '', '', 'paid', 'Stockholm', '', '', false, false, false);`, id); err != nil {
				log.Fatalf("seed customer meta: %v", err)
			}
		case "translator":
			if _, err := pool.Exec(ctx, `
INSERT INTO user_meta (user_id, translator_type, translator_level, gender, consumer_type,
                       city, address, instructions,
                       not_get_notification, not_get_nighttime, not_get_emergency)
VALUES ($1, 'professional', 'Certified', 'female', '', 'Stockholm', '', '', false, false, false);`, id); err != nil {
				log.Fatalf("seed translator meta: %v", err)
			}
			for _, lid := range langIDs[:2] {
				if _, err := pool.Exec(ctx,
					`INSERT INTO user_languages (user_id, language_id) VALUES ($1, $2);`,
					id, lid,
				); err != nil {
					log.Fatalf("seed translator language: %v", err)
				}
			}
		}
		fmt.Printf("seeded: %s (%s, id=%s)\n", a.Email, a.Role, id)
	}

	fmt.Println("✅ Seeding complete.")
}

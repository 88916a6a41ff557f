package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/messijoe-pos/api/internal/auth"
	"github.com/messijoe-pos/api/internal/config"
	"github.com/messijoe-pos/api/internal/enum"
	"github.com/messijoe-pos/api/internal/floor"
	"github.com/messijoe-pos/api/internal/menu"
	"github.com/messijoe-pos/api/internal/order"
	"github.com/messijoe-pos/api/internal/receipt"
	"github.com/messijoe-pos/api/internal/router"
	"github.com/messijoe-pos/api/internal/service"
	"github.com/messijoe-pos/api/internal/txnid"
	"github.com/messijoe-pos/api/internal/ws"
)

func main() {
	cfg := config.Load()

	sink, err := receipt.NewFileSink(cfg.ReceiptDir)
	if err != nil {
		log.Fatal(err)
	}

	flow := service.NewWorkflow(
		floor.NewRegistry(cfg.TableCount, cfg.TableCapacity),
		order.NewBook(),
		menu.Default(),
		txnid.Random{},
		sink,
	)

	staff, err := seedStaff()
	if err != nil {
		log.Fatal(err)
	}

	hub := ws.NewHub()
	go hub.Run()

	r := router.New(cfg, flow, staff, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}

// seedStaff builds the in-memory roster. The roster lives only for this run;
// passwords come from the environment with dev fallbacks.
func seedStaff() (*auth.Directory, error) {
	d := auth.NewDirectory()
	roster := []struct {
		name, passwordEnv, fallback, role string
	}{
		{"joe", "MANAGER_PASSWORD", "dev-manager", enum.StaffRoleManager},
		{"sam", "SERVER_PASSWORD", "dev-server", enum.StaffRoleServer},
	}
	for _, m := range roster {
		if _, err := d.Add(m.name, envOr(m.passwordEnv, m.fallback), m.role); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

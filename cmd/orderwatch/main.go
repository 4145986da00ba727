// orderwatch is a terminal admin session: it tails the order stream the
// same way the dashboard does, reconciling push events with the polling
// fallback and printing each new order as it arrives.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tshirt-store/client"
	"tshirt-store/models"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "API base URL")
	token := flag.String("token", os.Getenv("ADMIN_TOKEN"), "admin bearer token")
	pollInterval := flag.Duration("poll", 30*time.Second, "poll fallback interval")
	flag.Parse()

	if *token == "" {
		log.Fatal("admin token required (-token or ADMIN_TOKEN)")
	}

	api := client.NewAdminAPI(*baseURL, *token)
	session := client.NewSession(api)
	session.OnAlert(func(order models.Order) {
		fmt.Printf("\a[NEW] %s  %s  %s  %.0f  (%d unread)\n",
			order.OrderNumber(), order.Name, order.District, order.TotalCost, session.Unread())
	})
	session.OnStatusChange(func(status client.ConnStatus) {
		log.Printf("connection: %s", status)
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := session.Load(ctx); err != nil {
		log.Fatalf("initial load failed: %v", err)
	}
	orders := session.Orders()
	fmt.Printf("loaded %d orders\n", len(orders))
	for _, o := range orders {
		fmt.Printf("  %s  %-20s %-12s %s\n", o.OrderNumber(), o.Name, o.Status, o.CreatedAt.Format(time.RFC3339))
	}

	wsURL := strings.Replace(*baseURL, "http", "ws", 1) + "/admin/events"
	push := client.NewPushConn(wsURL, *token, session)
	poller := client.NewPoller(session, api, *pollInterval)

	go push.Run(ctx)
	go poller.Run(ctx)

	<-ctx.Done()
	fmt.Println("bye")
}

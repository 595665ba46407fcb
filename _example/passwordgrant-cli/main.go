package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

var (
	serverURL string
	clientID  string
)

func init() {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	serverURL = getEnv("SERVER_URL", "http://localhost:8080")
	clientID = getEnv("CLIENT_ID", "")

	if clientID == "" {
		fmt.Println("Error: CLIENT_ID not set. Please set it in .env file or environment variable.")
		fmt.Println("You can find the client_id in the server startup logs.")
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func main() {
	username := flag.String("username", os.Getenv("USERNAME"), "resource owner username")
	scope := flag.String("scope", "", "space separated scopes to request (default: all client scopes)")
	flag.Parse()

	fmt.Printf("=== OAuth Password Grant CLI Demo ===\n")

	config := &oauth2.Config{
		ClientID: clientID,
		Endpoint: oauth2.Endpoint{
			TokenURL:  serverURL + "/oauth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		Scopes: strings.Fields(*scope),
	}

	if *username == "" {
		*username = prompt("Username: ")
	}
	password := os.Getenv("PASSWORD")
	if password == "" {
		password = prompt("Password: ")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("Step 1: Exchanging credentials for an access token...")
	token, err := config.PasswordCredentialsToken(ctx, *username, password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			fmt.Printf("Token request rejected: %s %s\n",
				retrieveErr.ErrorCode, retrieveErr.ErrorDescription)
		} else {
			fmt.Printf("Error requesting token: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("\n========================================\n")
	fmt.Printf("Authentication successful!\n")
	fmt.Printf("Access Token: %s...\n", token.AccessToken[:min(50, len(token.AccessToken))])
	fmt.Printf("Token Type: %s\n", token.Type())
	fmt.Printf("Scope: %v\n", token.Extra("scope"))
	fmt.Printf("Expires In: %s\n", time.Until(token.Expiry).Round(time.Second))
	fmt.Printf("========================================\n")

	fmt.Println("\nStep 2: Verifying token...")
	if err := verifyToken(ctx, token.AccessToken); err != nil {
		fmt.Printf("Token verification failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Token verified successfully!")
}

// prompt reads one line from stdin. Input is echoed; use PASSWORD to avoid it.
func prompt(label string) string {
	fmt.Print(label)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

func verifyToken(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL+"/oauth/tokeninfo", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		_ = json.Unmarshal(body, &errResp)
		return fmt.Errorf("%s: %s", errResp.Error, errResp.ErrorDescription)
	}

	fmt.Printf("Token Info: %s\n", string(body))
	return nil
}

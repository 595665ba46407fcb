package strategy_test

import (
	"context"
	"fmt"

	"github.com/go-authgate/passwordgrant/strategy"
)

func ExampleStrategy_Authenticate() {
	s, err := strategy.New(func(
		_ context.Context,
		clientID, username, password string,
	) strategy.Result[string] {
		if clientID == "cli" && username == "alice" && password == "s3cret" {
			return strategy.Verified(username, "read write")
		}
		return strategy.Rejected[string]()
	})
	if err != nil {
		panic(err)
	}

	actions := strategy.ActionFuncs[string]{
		OnSuccess: func(principal string, info any) {
			fmt.Printf("success: %s (%v)\n", principal, info)
		},
		OnFail: func(string, int) {
			fmt.Println("failure")
		},
		OnError: func(err error) {
			fmt.Println("error:", err)
		},
	}

	s.Authenticate(context.Background(), &strategy.Request{Body: map[string]string{
		"client_id": "cli",
		"username":  "alice",
		"password":  "s3cret",
	}}, actions)

	s.Authenticate(context.Background(), &strategy.Request{Body: map[string]string{
		"client_id": "cli",
		"username":  "alice",
		"password":  "wrong",
	}}, actions)

	s.Authenticate(context.Background(), &strategy.Request{}, actions)

	// Output:
	// success: alice (read write)
	// failure
	// failure
}

/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var clientAPIURL string

// clientCmd is an interactive client for exercising the auth endpoints
// of a running server. Passwords are read without echo.
var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Interactively register or log in against a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		operation, err := promptLine(reader, "What do you want to do? (register/login): ")
		if err != nil {
			return err
		}

		var body map[string]any
		switch operation {
		case "register":
			body, err = promptRegister(reader)
		case "login":
			body, err = promptLogin(reader)
		default:
			return fmt.Errorf("unknown operation %q", operation)
		}
		if err != nil {
			return err
		}

		return postJSON(cmd.OutOrStdout(), clientAPIURL+"/auth/"+operation, body)
	},
}

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.Flags().StringVar(&clientAPIURL, "api-url", "http://localhost:8000", "base URL of the running server")
}

func promptRegister(reader *bufio.Reader) (map[string]any, error) {
	email, err := promptLine(reader, "Email: ")
	if err != nil {
		return nil, err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return nil, err
	}
	role, err := promptLine(reader, "Role: ")
	if err != nil {
		return nil, err
	}
	ageRaw, err := promptLine(reader, "Age: ")
	if err != nil {
		return nil, err
	}
	age, err := strconv.Atoi(ageRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid age %q", ageRaw)
	}
	nickName, err := promptLine(reader, "Nickname: ")
	if err != nil {
		return nil, err
	}
	name, err := promptLine(reader, "First name: ")
	if err != nil {
		return nil, err
	}
	surname, err := promptLine(reader, "Surname: ")
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"email":    email,
		"password": password,
		"role":     role,
		"age":      age,
		"nickName": nickName,
		"name":     name,
		"surname":  surname,
	}, nil
}

func promptLogin(reader *bufio.Reader) (map[string]any, error) {
	email, err := promptLine(reader, "Email: ")
	if err != nil {
		return nil, err
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"email":    email,
		"password": password,
	}, nil
}

func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(passwordBytes), nil
}

func postJSON(out io.Writer, url string, body map[string]any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		fmt.Fprintf(out, "Error (%d): %s\n", resp.StatusCode, respBody)
		return nil
	}
	fmt.Fprintf(out, "Success (%d): %s\n", resp.StatusCode, respBody)
	return nil
}

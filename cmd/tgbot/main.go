package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"Pipewrap/internal/calc/repair"
	"Pipewrap/internal/catalog"
)

// Field crews text a one-line repair case and get the sized design back.
// Example:
//
//	/calc od=219.1 wall=8.18 p=20 t=45 rem=4.18 len=150 mech=corrosion loc=external f=0.333

type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type UpdateResponse struct {
	OK     bool     `json:"ok"`
	Result []Update `json:"result"`
}

func main() {
	token := os.Getenv("TOKEN_BOT")
	if token == "" {
		log.Fatal("TOKEN_BOT missing")
	}
	cat := catalog.Default()

	offset := 0
	for {
		updates, err := getUpdates(token, offset)
		if err != nil {
			log.Println("getUpdates error:", err)
			time.Sleep(2 * time.Second)
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			if u.Message != nil {
				handleMessage(token, cat, u.Message)
			}
		}
		time.Sleep(1 * time.Second)
	}
}

func handleMessage(token string, cat *catalog.Catalog, msg *Message) {
	text := strings.TrimSpace(msg.Text)
	switch {
	case text == "/start" || text == "/help":
		sendMessage(token, msg.Chat.ID, helpText())
	case strings.HasPrefix(text, "/calc"):
		in, err := parseCase(strings.TrimPrefix(text, "/calc"))
		if err != nil {
			sendMessage(token, msg.Chat.ID, "Bad case: "+err.Error())
			return
		}
		res, err := repair.Calculate(in, cat)
		if err != nil {
			sendMessage(token, msg.Chat.ID, "Rejected: "+err.Error())
			return
		}
		sendMessage(token, msg.Chat.ID, formatResult(res))
	}
}

func parseCase(args string) (repair.Input, error) {
	in := repair.Input{}
	for _, field := range strings.Fields(args) {
		key, val, ok := strings.Cut(field, "=")
		if !ok {
			return in, fmt.Errorf("expected key=value, got %q", field)
		}
		switch key {
		case "mech":
			in.Mechanism = val
			continue
		case "loc":
			in.Location = val
			continue
		case "sys":
			in.System = val
			continue
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return in, fmt.Errorf("%s: %w", key, err)
		}
		switch key {
		case "od":
			in.ODMM = v
		case "wall":
			in.WallMM = v
		case "smys":
			in.SMYSMPa = v
		case "p":
			in.PressureBar = v
		case "t":
			in.DesignTempC = v
		case "rem":
			in.RemainingWallMM = v
		case "len":
			in.DefectLengthMM = v
		case "f":
			in.DesignFactor = v
		case "min":
			in.MinPlies = int(v)
		default:
			return in, fmt.Errorf("unknown field %q", key)
		}
	}
	return in, nil
}

func formatResult(res repair.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Type %s/%s repair, %s\n", res.ThicknessClass, res.OverlapClass, res.System)
	fmt.Fprintf(&b, "Plies: %d (%.2f mm)\n", res.PlyCount, res.FinalThicknessMM)
	fmt.Fprintf(&b, "Overlap: %.0f mm, total length: %.0f mm\n", res.OverlapMM, res.TotalLengthMM)
	fmt.Fprintf(&b, "Fabric: %.2f m2, epoxy: %.2f kg", res.FabricAreaM2, res.EpoxyKg)
	return b.String()
}

func helpText() string {
	return "Send a repair case:\n" +
		"/calc od=219.1 wall=8.18 p=20 t=45 rem=4.18 len=150 mech=corrosion loc=external f=0.333\n" +
		"Optional: smys=<MPa> sys=<system> min=<forced ply floor>"
}

func getUpdates(token string, offset int) ([]Update, error) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/getUpdates?timeout=20&offset=%d", token, offset)
	res, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	var out UpdateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func sendMessage(token string, chatID int64, text string) {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token)
	payload := map[string]any{"chat_id": chatID, "text": text}
	b, _ := json.Marshal(payload)
	_, _ = http.Post(url, "application/json", strings.NewReader(string(b)))
}

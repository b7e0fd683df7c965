package notifications

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SendWebhook sends the JSON payload to the subscriber's URL, signed with
// HMAC-SHA256 so the receiver can verify it came from us.
func SendWebhook(url string, payload interface{}, secret string) error {
	// 1. Convert Payload to JSON
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	// 2. Sign the body
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(jsonData)
	signature := hex.EncodeToString(mac.Sum(nil))

	// 3. Prepare Request
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "MiniPay-Webhook/1.0")
	req.Header.Set("X-Webhook-Signature", signature)

	// 4. Send with Timeout (Don't let slow subscribers block us!)
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 5. Check Response
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil // Success
	}

	return fmt.Errorf("subscriber returned error: %d", resp.StatusCode)
}

package cache

import "fmt"

func ClassificationKey(textHash string) string {
	return fmt.Sprintf("classify:%s", textHash)
}

func ScoreKey(textHash string) string {
	return fmt.Sprintf("score:%s", textHash)
}

func RateLimitKey(keyPrefix string) string {
	return fmt.Sprintf("ratelimit:%s", keyPrefix)
}

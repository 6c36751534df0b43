package main

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

var httpc = resty.New()

func doGet(url string) ([]byte, error) {
	resp, err := httpc.R().Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("GET %s: status %d: %s", url, resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

func doPostJSON(url string, payload interface{}) ([]byte, error) {
	resp, err := httpc.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("POST %s: status %d: %s", url, resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}

func doDelete(url string) error {
	resp, err := httpc.R().Delete(url)
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusNoContent && resp.StatusCode() >= 300 {
		return fmt.Errorf("DELETE %s: status %d: %s", url, resp.StatusCode(), resp.String())
	}
	return nil
}

package server

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Tunable 支持运行期热更新的游戏参数表（由游戏管理器实现）
type Tunable interface {
	TuningSnapshot() map[string]float64
	ApplyTuning(values map[string]float64)
}

// NewAdminMux 组装管理与监控路由
// GET/POST /admin/config 读取与部分更新游戏参数
// GET /metrics Prometheus 指标；GET /healthz 存活探针；GET /ws 网关接入
func NewAdminMux(s *Server, tun Tunable) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/admin/config", func(w http.ResponseWriter, r *http.Request) {
		handleAdminConfig(w, r, tun)
	})
	return mux
}

// handleAdminConfig 游戏参数的读取与更新（热更新基本规则）
// GET  /admin/config          返回当前参数
// POST /admin/config          以 JSON 载荷更新部分字段
func handleAdminConfig(w http.ResponseWriter, r *http.Request, tun Tunable) {
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tun.TuningSnapshot())
	case http.MethodPost:
		var body map[string]float64
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		tun.ApplyTuning(body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
		Log.Infof("tuning updated: %v", body)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

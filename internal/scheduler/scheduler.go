package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"testhub/internal/pkg/config"
)

// SessionPurger 清理过期会话
type SessionPurger interface {
	PurgeExpiredSessions() (int64, error)
}

// InvitationCounter 统计过期未使用的邀请码
type InvitationCounter interface {
	CountExpiredUnused() (int64, error)
}

// Scheduler 调度器
type Scheduler struct {
	cron          *cron.Cron
	logger        *zap.Logger
	sessions      SessionPurger
	invitations   InvitationCounter
	cronSchedules map[string]cron.EntryID
}

// NewScheduler 创建调度器
func NewScheduler(logger *zap.Logger, sessions SessionPurger, invitations InvitationCounter) *Scheduler {
	// cron 表达式带秒级字段
	return &Scheduler{
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger,
		sessions:      sessions,
		invitations:   invitations,
		cronSchedules: make(map[string]cron.EntryID),
	}
}

// Start 启动调度器
func (s *Scheduler) Start(cfg *config.SchedulerConfig) error {
	log := s.logger.Sugar()

	if !cfg.Enabled {
		log.Info("定时任务调度器未启用")
		return nil
	}

	log.Info("启动定时任务调度器...")

	// 秒 分 时 日 月 周
	cronExpr := cfg.SessionSweep
	if cronExpr == "" {
		cronExpr = "0 */30 * * * *"
		log.Warnf("未配置scheduler.session_sweep, 使用默认值 %s", cronExpr)
	}

	entryID, err := s.cron.AddFunc(cronExpr, s.SweepSessions)
	if err != nil {
		log.Errorf("注册会话清理任务 %s 失败: %v", cronExpr, err)
		return err
	}
	s.cronSchedules["session_sweep"] = entryID
	log.Infof("会话清理任务已注册: %s entry_id=%d", cronExpr, entryID)

	s.cron.Start()
	log.Info("定时任务调度器启动成功")
	return nil
}

// Stop 停止调度器, 等待正在执行的任务完成
func (s *Scheduler) Stop() {
	s.logger.Info("正在停止定时任务调度器...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("定时任务调度器已停止")
}

// Entries 已注册的任务
func (s *Scheduler) Entries() map[string]cron.EntryID {
	return s.cronSchedules
}

// SweepSessions 删除过期会话并统计过期邀请码, 也可手动触发
func (s *Scheduler) SweepSessions() {
	purged, err := s.sessions.PurgeExpiredSessions()
	if err != nil {
		s.logger.Error("清理过期会话失败", zap.Error(err))
		return
	}

	expired, err := s.invitations.CountExpiredUnused()
	if err != nil {
		s.logger.Warn("统计过期邀请码失败", zap.Error(err))
	}

	s.logger.Info("会话清理完成",
		zap.Int64("purged_sessions", purged),
		zap.Int64("expired_invitations", expired),
	)
}

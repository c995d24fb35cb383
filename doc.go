/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package tsindex 为时间序列索引构建滑动窗口特征。

一条序列被切分为固定大小、固定步长的滑动窗口，每个窗口产生一个标识符
（起始时间、结束时间、窗口长度）和一个对齐偏移（窗口第一个元素在序列中的下标）。
Builder 驱动预处理器产生窗口，按批次过滤后交给 Sink，然后清空标识符存储。

# 窗口类型

• count_fixed - 窗口按元素个数划分，长度恒为 range
• time_fixed - 窗口按时间划分：结束于距起点至少 range 的第一个元素，下一个窗口起点至少前移 step，长度随数据密度变化

# 入门示例

	src := source.NewRange(1000, 0, 10)

	cfg := types.NewConfig()
	cfg.Series = "cpu"
	cfg.Policy = types.DefaultWindowPolicy(32)
	cfg.Policy.SlideStep = 8

	b, err := tsindex.New(src, cfg,
		tsindex.WithFilter("windowLength == 32"),
		tsindex.WithSink(func(ctx context.Context, fs []tsindex.Feature) error {
			for _, f := range fs {
				fmt.Println(f.Identifier, f.Offset)
			}
			return nil
		}))
	if err != nil {
		panic(err)
	}
	n, err := b.Drain(context.Background())

# 持续写入的序列

source.Variable 允许在处理过程中追加数据。只有结束元素已经到达的窗口才会被产生，
因此标识符一旦产生便不再变化。配合 FlushSchedule 可以周期性地处理新数据：

	b, _ := tsindex.New(src, cfg, tsindex.WithFlushSchedule("@every 30s"))
	_ = b.Start()
	defer b.Stop()

# 配置文件

types.LoadConfigs 从 YAML 读取按序列名组织的配置：

	cpu:
	  batchSize: 128
	  filter: "duration < 600"
	  policy:
	    type: time_fixed
	    windowRange: 60
	    slideStep: 30
*/
package tsindex

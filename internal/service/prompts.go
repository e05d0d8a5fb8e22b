package service

// 提示词模板。所有需要结构化输出的提示词都要求模型只返回JSON，
// 解析前统一走extractJSON剥掉可能的代码围栏。

const curriculumPrompt = `你是一位经验丰富的课程设计师。为技能「%s」设计一份由浅入深的学习大纲。

要求：
1. 规划 8 到 12 个主题，从零基础到可独立实践，每个主题聚焦一个可在 15 分钟内讲清的知识点。
2. 用一句话概括这项技能整体学什么。
3. 只返回JSON，不要任何其他文字，格式如下：
{"name": "技能名称", "description": "一句话概括", "curriculum": [{"title": "主题标题", "description": "该主题学什么"}]}`

const lessonPrompt = `你是一位一对一辅导老师。为技能「%s」编写一节关于「%s」的微课，难度等级 %d（1最简单，5最难）。

学员已完成的主题：%s

要求：
1. 假设学员掌握了已完成主题的内容，不要重复讲解，可以适当呼应。
2. 正文分 2 到 4 个小节，每节配具体例子，总阅读时长控制在 15 分钟内。
3. 提炼 3 到 5 条要点（key_points），并写一段 2 到 3 句话的小结（summary）。
4. 如果该主题适合动手编码，附带一个练习（exercise），给出题目、起始代码和语言；不适合就省略 exercise 字段。
5. 只返回JSON，格式如下：
{"introduction": "引入", "sections": [{"heading": "小节标题", "body": "小节正文，Markdown格式"}], "key_points": ["要点"], "summary": "小结", "exercise": {"prompt": "题目", "starter_code": "起始代码", "language": "语言"}}`

const quizPrompt = `根据下面这节课的内容出一套小测验，难度等级 %d。

课程内容：
%s

要求：
1. 出 5 道题：3 道单选题（multiple_choice，四个选项，correct_answer 必须与某个选项完全一致），2 道简答题（open_ended，correct_answer 写参考答案要点）。
2. 题目只考课程内容覆盖到的知识，每道题附一句解析（explanation）。
3. 只返回JSON数组，格式如下：
[{"question": "题目", "type": "multiple_choice", "options": ["A", "B", "C", "D"], "correct_answer": "A", "explanation": "解析"}]`

const gradeAnswerPrompt = `判断学员对下面这道简答题的回答是否正确。

题目：%s
参考答案要点：%s
学员回答：%s

要求：
1. 意思对即算正确，不要纠结措辞；遗漏关键点或概念错误算不正确。
2. feedback 用一两句话指出答对在哪或错在哪。
3. 只返回JSON：{"correct": true, "feedback": "点评"}`

const reviewCardsPrompt = `从下面这节课的内容中提炼复习卡片，用于间隔重复记忆。

课程内容：
%s

要求：
1. 出 3 到 5 张卡片，每张卡片一问一答，问题具体、答案简短（不超过两句话）。
2. 优先覆盖 key_points 里的知识点。
3. 只返回JSON数组：[{"question": "问题", "answer": "答案"}]`

const cheatSheetPrompt = `为技能「%s」整理一份速查表（cheat sheet），供学员完成课程后快速回顾。

各节课小结：
%s

要求：
1. 用Markdown编写，按主题分节，重点写语法、命令、公式等便于速查的内容。
2. 控制在一页以内，不要写成教程。
3. 直接返回Markdown正文，不要JSON，不要代码围栏包裹整体。`

const projectBriefPrompt = `为技能「%s」设计一个综合实践项目，检验学员对整个课程的掌握程度。

课程概览：
%s

各节课主题及完成情况：
%s

要求：
1. 项目规模控制在 1 到 2 小时可完成，综合运用多节课的知识。
2. 列出 3 到 5 条具体要求（requirements），并写明评判标准（evaluation_criteria）。
3. submission_type 固定为「%s」。
4. 只返回JSON：{"title": "项目标题", "description": "项目描述", "requirements": ["要求"], "evaluation_criteria": "评判标准", "submission_type": "code"}`

const projectEvalPrompt = `你是一位严格但友善的导师，请评审学员对技能「%s」实践项目的提交。

项目要求：
%s

学员提交：
%s

要求：
1. 逐条对照 requirements 判断是否达成，大体达成且无原则性错误即 passed 为 true。
2. score 为 0 到 100 的整数；给出总体点评（feedback）、做得好的地方（strengths）和改进建议（suggestions）。
3. 未通过时在 areas_for_improvement 里指出必须补足的点。
4. 只返回JSON：{"passed": true, "score": 85, "feedback": "点评", "strengths": ["亮点"], "suggestions": ["建议"], "areas_for_improvement": []}`

const exerciseEvalPrompt = `检查学员的编码练习完成情况。

练习题目：
%s

学员代码：
%s

运行输出：
%s

要求：
1. 代码实现了题目要求且输出合理即 correct 为 true，风格问题不影响判定。
2. feedback 一两句话点评；不正确时在 hints 里给 1 到 2 条提示，不要直接给答案。
3. 只返回JSON：{"correct": true, "feedback": "点评", "hints": []}`

const chatSystemPrompt = `你是一位耐心的一对一学习导师。用简洁的语言回答学员的问题，优先用例子解释概念，回答控制在三段以内。不要回答与学习无关的问题，礼貌地把话题引回学习内容。`
